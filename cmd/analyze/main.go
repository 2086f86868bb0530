// Facemeter batch analyzer - extracts confidence and nervousness scores
// from a finite video file at one-second intervals.
package main

import (
	"context"
	"flag"
	"fmt"
	stdlog "log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/affectlab/facemeter/internal/config"
	"github.com/affectlab/facemeter/internal/log"
	"github.com/affectlab/facemeter/pkg/batch"
	"github.com/affectlab/facemeter/pkg/emotion"
	"github.com/affectlab/facemeter/pkg/report"
)

func main() {
	video := flag.String("video", "", "path to the input video file")
	output := flag.String("output", config.OutputDir(), "directory for CSV and report exports")
	prefix := flag.String("prefix", "emotion_data", "export filename prefix")
	models := flag.String("models", config.ModelDir(), "directory holding the ONNX models")
	level := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	log.Init(*level)

	in := *video
	if in == "" && flag.NArg() > 0 {
		in = flag.Arg(0)
	}
	if in == "" {
		fmt.Fprintln(os.Stderr, "usage: analyze [-video] <path/to/video>")
		fmt.Fprintf(os.Stderr, "supported formats: %v\n", batch.SupportedFormats)
		os.Exit(1)
	}

	classifier, err := newClassifier(*models)
	if err != nil {
		stdlog.Fatalf("❌ Classifier setup failed: %v", err)
	}
	defer classifier.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	fmt.Printf("🎬 Analyzing %s\n", in)
	sampler := batch.New(classifier)
	res, err := sampler.Run(ctx, in, *output, *prefix, consoleProgress{})
	if err != nil {
		stdlog.Fatalf("❌ Analysis failed: %v", err)
	}

	fmt.Println()
	fmt.Print(report.Render(res.Report))
	if res.CSVPath != "" {
		fmt.Printf("\n📄 Data: %s\n", res.CSVPath)
	}
	if res.ReportPath != "" {
		fmt.Printf("📄 Report: %s\n", res.ReportPath)
	}
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

// consoleProgress prints milestones and log lines to stdout.
type consoleProgress struct{}

func (consoleProgress) Update(percent int, message string) {
	fmt.Printf("[%3d%%] %s\n", percent, message)
}

func (consoleProgress) Log(message string) {
	fmt.Println("       " + message)
}
