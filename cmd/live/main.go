// Facemeter live analyzer - samples a camera feed at a fixed cadence and
// serves a real-time dashboard with confidence/nervousness stats.
package main

import (
	"context"
	"flag"
	"fmt"
	stdlog "log"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/affectlab/facemeter/internal/config"
	"github.com/affectlab/facemeter/internal/log"
	"github.com/affectlab/facemeter/pkg/emotion"
	"github.com/affectlab/facemeter/pkg/report"
	"github.com/affectlab/facemeter/pkg/stream"
	"github.com/affectlab/facemeter/pkg/web"
)

func main() {
	camera := flag.Int("camera", config.CameraIndex(), "camera device index")
	port := flag.String("port", "8090", "dashboard port")
	output := flag.String("output", config.OutputDir(), "directory for CSV exports")
	models := flag.String("models", config.ModelDir(), "directory holding the ONNX models")
	noMirror := flag.Bool("no-mirror", false, "disable mirror flip of the display frames")
	level := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	log.Init(*level)

	classifier, err := newClassifier(*models)
	if err != nil {
		stdlog.Fatalf("❌ Classifier setup failed: %v", err)
	}
	defer classifier.Close()

	cfg := stream.DefaultConfig()
	cfg.Mirror = !*noMirror
	sampler := stream.New(classifier, cfg)

	opener := func() (stream.LiveSource, error) {
		return stream.OpenCamera(*camera)
	}

	server := web.NewServer(*port, *output, sampler, opener)
	server.StartAsync()
	defer server.Shutdown()

	src, err := opener()
	if err != nil {
		stdlog.Fatalf("❌ Camera open failed: %v", err)
	}
	if err := sampler.Start(src); err != nil {
		stdlog.Fatalf("❌ Session start failed: %v", err)
	}
	fmt.Printf("📷 Live analysis started (camera %d)\n", *camera)
	fmt.Printf("🌐 Dashboard: http://localhost:%s\n", *port)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	select {
	case <-ctx.Done():
		if err := sampler.Stop(); err != nil {
			stdlog.Printf("⚠️  Stop failed: %v", err)
		}
	case <-sampler.Done():
		if err := sampler.Err(); err != nil {
			stdlog.Printf("⚠️  Session ended: %v", err)
		}
	}

	printSessionReport(sampler, *output)
}

// newClassifier picks the remote service when CLASSIFIER_URL is set,
// otherwise loads the local models.
func newClassifier(modelDir string) (emotion.Classifier, error) {
	if url := config.ClassifierURL(); url != "" {
		return emotion.NewRemote(url), nil
	}

	cfg := emotion.DefaultConfig()
	cfg.FaceModelPath = filepath.Join(modelDir, "face_detection_yunet.onnx")
	cfg.EmotionModelPath = filepath.Join(modelDir, "emotion_fer.onnx")
	return emotion.NewDNN(cfg)
}

// printSessionReport renders the end-of-session summary and exports the
// history, if any samples were collected.
func printSessionReport(sampler *stream.Sampler, outputDir string) {
	rep, err := sampler.SessionReport()
	if err != nil {
		fmt.Println("\nNo samples collected this session.")
		return
	}

	fmt.Println()
	fmt.Print(report.Render(rep.Report))
	fmt.Printf("\nSession %s: %d samples over %.1fs (%.2f samples/sec)\n",
		rep.SessionID, rep.Frames, rep.Duration, rep.Rate)

	path := filepath.Join(outputDir, report.DefaultCSVName("realtime_emotion_analysis"))
	if err := sampler.ExportCSV(path); err != nil {
		stdlog.Printf("⚠️  CSV export failed: %v", err)
		return
	}
	fmt.Printf("📄 Data: %s\n", path)
}
