package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mozaik-cms/mozaik/internal/apply"
	"github.com/mozaik-cms/mozaik/internal/cli/config"
	"github.com/mozaik-cms/mozaik/internal/cli/ui"
	"github.com/mozaik-cms/mozaik/internal/compiler"
	cerrors "github.com/mozaik-cms/mozaik/internal/compiler/errors"
	"github.com/mozaik-cms/mozaik/internal/journal"
	"github.com/mozaik-cms/mozaik/internal/mozaik"
	"github.com/mozaik-cms/mozaik/internal/schemadiff"
	"github.com/mozaik-cms/mozaik/internal/transport"
)

// errReported is returned after a failure was already printed
var errReported = errors.New("command failed")

// Backend is everything the commands need from the Mozaik API
type Backend interface {
	apply.Backend
	SchemaChanges(ctx context.Context, schema string) (*schemadiff.Result, error)
	UpdateSchema(ctx context.Context, schema string, applyDangerous bool) (*schemadiff.Result, error)
	ImportSchema(ctx context.Context, schema string) (*schemadiff.Result, error)
	ExportSchema(ctx context.Context) (string, error)

	ProjectID(ctx context.Context) (string, error)
	ResetProject(ctx context.Context, projectID string, resetType mozaik.ResetType) error
	CreateDocument(ctx context.Context, document mozaik.Document) (string, error)
	PublishDocument(ctx context.Context, documentID string) (string, error)
	CreateAsset(ctx context.Context, asset mozaik.Asset) (string, error)
}

// ResetConfirmer asks before a project reset deletes anything
type ResetConfirmer interface {
	ConfirmReset(ctx context.Context, projectID string, types []mozaik.ResetType) (bool, error)
}

// Options replaces the collaborators commands create. Zero fields use the
// real implementations.
type Options struct {
	NewBackend func(cfg *config.Config, logger *zap.Logger) (Backend, error)
	NewJournal func(ctx context.Context, cfg *config.Config, logger *zap.Logger) (journal.Store, error)
	Confirmer  apply.Confirmer
	Reset      ResetConfirmer
}

// app holds the state shared by every command of one invocation
type app struct {
	opts Options

	configPath string
	verbose    bool
	noColor    bool

	cfg    *config.Config
	logger *zap.Logger
}

func newApp(opts Options) *app {
	if opts.NewBackend == nil {
		opts.NewBackend = newHTTPBackend
	}
	if opts.NewJournal == nil {
		opts.NewJournal = newJournalStore
	}
	if opts.Confirmer == nil {
		opts.Confirmer = surveyConfirmer{}
	}
	if opts.Reset == nil {
		opts.Reset = surveyConfirmer{}
	}
	return &app{opts: opts, logger: zap.NewNop()}
}

// setup loads the configuration and builds the logger
func (a *app) setup(cmd *cobra.Command) error {
	a.logger = newLogger(a.verbose, cmd.ErrOrStderr())

	cfg, err := config.Load(a.configPath)
	if err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), ui.ConfigError(err.Error(), a.noColor))
		return errReported
	}
	a.cfg = cfg
	a.logger.Debug("configuration loaded", zap.String("file", cfg.File), zap.String("schema_path", cfg.SchemaPath))
	return nil
}

// backend builds the API client, failing early when credentials are missing
func (a *app) backend(cmd *cobra.Command) (Backend, error) {
	if err := a.cfg.RequireCredentials(); err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), ui.ConfigError(err.Error(), a.noColor))
		return nil, errReported
	}
	b, err := a.opts.NewBackend(a.cfg, a.logger)
	if err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), ui.ConfigError(err.Error(), a.noColor))
		return nil, errReported
	}
	return b, nil
}

// readSchema returns the schema file content
func (a *app) readSchema() (string, error) {
	data, err := os.ReadFile(a.cfg.SchemaPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("schema file %s does not exist, run `mozaik init` to create one", a.cfg.SchemaPath)
		}
		return "", fmt.Errorf("reading schema: %w", err)
	}
	return string(data), nil
}

// compile compiles the schema file and prints compiler errors
func (a *app) compile(cmd *cobra.Command) (*compiler.Output, error) {
	source, err := a.readSchema()
	if err != nil {
		return nil, err
	}

	out, err := compiler.Compile(source)
	if err != nil {
		if errs := cerrors.Collect(err); len(errs) > 0 {
			fmt.Fprint(cmd.ErrOrStderr(), ui.CompileErrors(errs, a.cfg.SchemaPath, source, a.noColor))
			return nil, errReported
		}
		return nil, err
	}

	for _, obj := range out.Extracted.Ignored {
		a.logger.Info("type implements no content interface, skipped", zap.String("type", obj.Name.Value))
	}
	a.logger.Debug("schema compiled",
		zap.String("hash", out.Hash),
		zap.Int("content_types", len(out.ContentTypes)),
	)
	return out, nil
}

// reportBackendError prints a failed backend call
func (a *app) reportBackendError(cmd *cobra.Command, operation string, err error) error {
	fmt.Fprint(cmd.ErrOrStderr(), ui.BackendError(operation, err, a.noColor))
	return errReported
}

func newHTTPBackend(cfg *config.Config, logger *zap.Logger) (Backend, error) {
	t, err := transport.NewHTTP(cfg.Transport("mozaik-cli/"+Version), logger)
	if err != nil {
		return nil, err
	}
	return mozaik.New(t, logger), nil
}

// newJournalStore uses Redis when an address is configured and memory otherwise
func newJournalStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (journal.Store, error) {
	if cfg.Journal.RedisAddr == "" {
		logger.Debug("journal kept in memory, set journal.redis_addr to keep it")
		return journal.NewMemoryStore(), nil
	}
	return journal.NewRedisStore(ctx, cfg.RedisJournal())
}

// newLogger logs to w: human readable at debug level when verbose, JSON
// warnings and errors otherwise
func newLogger(verbose bool, w io.Writer) *zap.Logger {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}

	var encoder zapcore.Encoder
	if verbose {
		encoder = zapcore.NewConsoleEncoder(cfg.EncoderConfig)
	} else {
		encoder = zapcore.NewJSONEncoder(cfg.EncoderConfig)
	}
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), cfg.Level)
	return zap.New(core)
}

// surveyConfirmer asks on the terminal and accepts only "yes"
type surveyConfirmer struct{}

func (surveyConfirmer) Confirm(_ context.Context, _ *schemadiff.Result) (bool, error) {
	var answer string
	prompt := &survey.Input{
		Message: `Do you want to apply these changes (only "yes" is accepted)?`,
	}
	if err := survey.AskOne(prompt, &answer); err != nil {
		return false, err
	}
	return answer == "yes", nil
}

func (surveyConfirmer) ConfirmReset(_ context.Context, projectID string, types []mozaik.ResetType) (bool, error) {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = strings.ToLower(strings.ReplaceAll(string(t), "_", " "))
	}

	var ok bool
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("Delete all %s of project %s? This cannot be undone.", strings.Join(names, ", "), projectID),
		Default: false,
	}
	if err := survey.AskOne(prompt, &ok); err != nil {
		return false, err
	}
	return ok, nil
}
