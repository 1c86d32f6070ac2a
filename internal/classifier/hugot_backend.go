package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"

	"github.com/spacesedan/emotionmcp/internal/emotions"
)

type HugotOptions struct {
	// ModelName is a Hugging Face repository holding an ONNX export,
	// e.g. "SamLowe/roberta-base-go_emotions-onnx".
	ModelName string
	ModelDir  string
	// OnnxFile selects the weights file when the repository ships several.
	OnnxFile string
}

type HugotBackend struct {
	session  *hugot.Session
	pipeline *pipelines.TextClassificationPipeline
}

// NewHugotLoader returns a Loader that downloads the model when it is not
// already present in ModelDir and builds a multi-label pipeline over it.
func NewHugotLoader(opts HugotOptions) Loader {
	return func(ctx context.Context) (Backend, error) {
		return NewHugotBackend(ctx, opts)
	}
}

func NewHugotBackend(_ context.Context, opts HugotOptions) (*HugotBackend, error) {
	if err := os.MkdirAll(opts.ModelDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create model directory: %w", err)
	}

	modelPath := localModelPath(opts.ModelDir, opts.ModelName)
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		slog.Info("[HugotBackend] Model not found, downloading...",
			slog.String("model", opts.ModelName))

		downloadOpts := hugot.NewDownloadOptions()
		downloadOpts.OnnxFilePath = opts.OnnxFile
		modelPath, err = hugot.DownloadModel(opts.ModelName, opts.ModelDir, downloadOpts)
		if err != nil {
			return nil, fmt.Errorf("failed to download model %s: %w", opts.ModelName, err)
		}
		slog.Info("[HugotBackend] Model downloaded successfully", slog.String("path", modelPath))
	} else {
		slog.Info("[HugotBackend] Using existing model", slog.String("path", modelPath))
	}

	session, err := hugot.NewORTSession()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize hugot session: %w", err)
	}

	var onnxFilename string
	if opts.OnnxFile != "" {
		onnxFilename = filepath.Base(opts.OnnxFile)
	}

	config := hugot.TextClassificationConfig{
		ModelPath:    modelPath,
		Name:         "goEmotionsPipeline",
		OnnxFilename: onnxFilename,
		Options: []hugot.TextClassificationOption{
			pipelines.WithMultiLabel(),
			pipelines.WithSigmoid(),
		},
	}
	pipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			slog.Warn("[HugotBackend] Failed to destroy session",
				slog.String("error", destroyErr.Error()))
		}
		return nil, fmt.Errorf("failed to initialize text classification pipeline: %w", err)
	}

	return &HugotBackend{session: session, pipeline: pipeline}, nil
}

func (b *HugotBackend) Classify(_ context.Context, texts []string) ([][]emotions.Score, error) {
	output, err := b.pipeline.RunPipeline(texts)
	if err != nil {
		return nil, fmt.Errorf("text classification failed: %w", err)
	}
	return fromClassificationOutputs(output.ClassificationOutputs), nil
}

func (b *HugotBackend) Close() error {
	return b.session.Destroy()
}

func fromClassificationOutputs(outputs [][]pipelines.ClassificationOutput) [][]emotions.Score {
	results := make([][]emotions.Score, 0, len(outputs))
	for _, perText := range outputs {
		scores := make([]emotions.Score, 0, len(perText))
		for _, o := range perText {
			scores = append(scores, emotions.Score{
				Label:       o.Label,
				Probability: float64(o.Score),
			})
		}
		results = append(results, scores)
	}
	return results
}

// localModelPath mirrors the directory hugot.DownloadModel writes to:
// the repository name with "/" replaced by "_".
func localModelPath(dir, modelName string) string {
	return filepath.Join(dir, strings.ReplaceAll(modelName, "/", "_"))
}
