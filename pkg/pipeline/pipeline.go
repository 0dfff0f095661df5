package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"shopcat/pkg/config"
	"shopcat/pkg/data"
	"shopcat/pkg/dataprep"
	"shopcat/pkg/loader"
	"shopcat/pkg/model"
	"shopcat/pkg/report"
)

// Result holds the outputs of every stage of a run.
type Result struct {
	RunID       string
	Rows        int
	Encoders    *dataprep.EncoderTable
	Target      *dataprep.LabelEncoder
	Features    *dataprep.Features
	Schema      Schema
	Split       loader.Split
	Predictions []int
	Accuracy    float64
	Report      *model.ClassificationReport
	Importances []model.FeatureImportance // full ranking, descending
}

// Pipeline runs load → clean → encode → split → train → evaluate once.
type Pipeline struct {
	cfg    config.Config
	logger *zap.Logger
	out    io.Writer
}

// New returns a pipeline printing its report to out.
func New(cfg *config.Config, logger *zap.Logger, out io.Writer) (*Pipeline, error) {
	if cfg == nil {
		return nil, errors.New("pipeline: config cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("pipeline: logger cannot be nil")
	}
	if out == nil {
		out = io.Discard
	}
	return &Pipeline{cfg: *cfg, logger: logger, out: out}, nil
}

// Run executes the whole pass. A missing input file prints the handled message
// and returns an error wrapping data.ErrFileNotFound.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	res := &Result{RunID: uuid.NewString()}
	log := p.logger.With(zap.String("run_id", res.RunID))
	start := time.Now()

	df, err := Load(p.cfg.Input, p.cfg.Categorical)
	if err != nil {
		if errors.Is(err, data.ErrFileNotFound) {
			p.printf("❌ File not found. Please make sure '%s' is in the same folder.\n", p.cfg.Input)
		}
		return nil, err
	}
	res.Rows = df.Nrow()
	p.printf("✅ Data Loaded Successfully\n")
	log.Info("Loaded dataset", zap.String("path", p.cfg.Input), zap.Int("rows", df.Nrow()), zap.Int("columns", df.Ncol()))

	p.printf("\n--- Starting Preprocessing ---\n")
	df = Clean(df, p.cfg.IDColumn)
	df, res.Encoders, err = Encode(df, p.cfg.Categorical)
	if err != nil {
		return nil, err
	}
	p.printf("✅ Text columns converted to numbers.\n")
	for _, col := range res.Encoders.Columns {
		enc, _ := res.Encoders.Get(col)
		log.Debug("Encoded column", zap.String("column", col), zap.Int("classes", enc.Len()))
	}

	res.Features, res.Target, err = dataprep.FeatureMatrix(df, p.cfg.Target)
	if err != nil {
		return nil, err
	}
	res.Schema = NewSchema(res.Features, res.Encoders, res.Target)

	res.Split, err = loader.TrainTestSplit(len(res.Features.Y), p.cfg.TestSize, p.cfg.Seed)
	if err != nil {
		return nil, err
	}
	XTrain, yTrain, XTest, yTest := res.Split.Apply(res.Features.X, res.Features.Y)
	p.printf("Training with %d customers. Testing on %d customers.\n", len(XTrain), len(XTest))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.printf("\n--- Training Random Forest Classifier ---\n")
	fitStart := time.Now()
	forest, err := Train(ctx, &p.cfg, XTrain, yTrain)
	if err != nil {
		return nil, fmt.Errorf("pipeline: train: %w", err)
	}
	p.printf("✅ Model Trained!\n")
	log.Info("Trained forest", zap.Int("trees", len(forest.Trees)), zap.Duration("duration", time.Since(fitStart)))

	res.Predictions, res.Accuracy, res.Report = Evaluate(forest, XTest, yTest, res.Target)
	p.printf("\n🎯 Model Accuracy: %.2f%%\n", res.Accuracy*100)

	p.printf("\n--- Detailed Report ---\n")
	if err := report.WriteClassificationReport(p.out, res.Report); err != nil {
		return nil, err
	}

	p.printf("\n--- Feature Importance ---\n")
	res.Importances, err = model.RankImportances(res.Features.Names, forest.FeatureImportances())
	if err != nil {
		return nil, err
	}
	top := model.TopImportances(res.Importances, p.cfg.Top)
	if err := report.WriteImportances(p.out, top); err != nil {
		return nil, err
	}

	if p.cfg.Plot != "" {
		if err := report.PlotImportances(top, p.cfg.Plot); err != nil {
			return nil, err
		}
		log.Info("Saved importance chart", zap.String("path", p.cfg.Plot))
	}

	log.Info("Pipeline finished", zap.Float64("accuracy", res.Accuracy), zap.Duration("duration", time.Since(start)))
	return res, nil
}

func (p *Pipeline) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// Load reads the dataset, keeping the categorical columns as text.
func Load(path string, categorical []string) (dataframe.DataFrame, error) {
	return data.LoadCSV(path, categorical)
}

// Clean drops the identifier column when the frame has one.
func Clean(df dataframe.DataFrame, idColumn string) dataframe.DataFrame {
	if idColumn == "" {
		return df
	}
	return dataprep.DropColumn(df, idColumn)
}

// Encode label-encodes the categorical columns.
func Encode(df dataframe.DataFrame, categorical []string) (dataframe.DataFrame, *dataprep.EncoderTable, error) {
	return dataprep.EncodeColumns(df, categorical)
}

// Train fits a random forest configured from cfg.
func Train(ctx context.Context, cfg *config.Config, X [][]float64, y []int) (*model.RandomForest, error) {
	forest := model.NewRandomForest(
		model.WithNEstimators(cfg.Trees),
		model.WithBootstrap(true),
		model.WithSeed(cfg.Seed),
		model.WithWorkers(cfg.Workers),
		model.WithForestMaxDepth(cfg.MaxDepth),
		model.WithForestMinSamplesSplit(cfg.MinSamplesSplit),
		model.WithForestMinSamplesLeaf(cfg.MinSamplesLeaf),
		model.WithForestMaxFeatures(cfg.MaxFeatures),
		model.WithForestCriterion(cfg.Criterion),
	)
	if err := forest.Fit(ctx, X, y); err != nil {
		return nil, err
	}
	return forest, nil
}

// Evaluate predicts the held-out rows and scores them. Class names come from the target encoder.
func Evaluate(clf model.Classifier, X [][]float64, y []int, target *dataprep.LabelEncoder) ([]int, float64, *model.ClassificationReport) {
	preds := clf.Predict(X)
	labels := func(code int) string {
		s, err := target.Inverse(code)
		if err != nil {
			return ""
		}
		return s
	}
	return preds, model.Accuracy(y, preds), model.NewClassificationReport(y, preds, labels)
}
