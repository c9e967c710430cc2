package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/cv-parser/internal/document"
	"github.com/spigell/cv-parser/internal/extraction"
	"github.com/spigell/cv-parser/internal/logger"
	"github.com/spigell/cv-parser/internal/profile"
)

const (
	PromptPrint  = "Print profile"
	PromptReport = "Report by field"
	PromptDump   = "Dump profile to file"
	PromptExit   = "Exit"

	stdinName = "stdin.txt"
)

var errExit = errors.New("exit requested")

var extractCmd = &cobra.Command{
	Use:          "extract [files...]",
	Short:        "Extract candidate profiles from txt, pdf or docx résumés",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return extract(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringP("output", "o", "json", "output format: json or yaml")
	extractCmd.Flags().IntP("concurrency", "c", defaultConcurrency, "how many documents are processed in parallel")
	extractCmd.Flags().Int64("max-document-size", document.DefaultMaxSize, "maximum document size in bytes")
	extractCmd.Flags().Bool("stdin", false, "read plain text from stdin instead of files")
	extractCmd.Flags().BoolP("interactive", "i", false, "choose what to do with a single extracted profile")

	viper.BindPFlag("output", extractCmd.Flags().Lookup("output"))
	viper.BindPFlag("concurrency", extractCmd.Flags().Lookup("concurrency"))
	viper.BindPFlag("max-document-size", extractCmd.Flags().Lookup("max-document-size"))
}

func extract(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	engine, err := newEngine(config, logger)
	if err != nil {
		return fmt.Errorf("building extraction engine: %w", err)
	}

	useStdin, _ := cmd.Flags().GetBool("stdin")

	var profiles []profile.CandidateProfile
	switch {
	case useStdin && len(args) > 0:
		return errors.New("cannot use --stdin together with files")
	case useStdin:
		p, err := extractReader(engine, cmd.InOrStdin(), config.MaxDocumentSize, logger)
		if err != nil {
			return err
		}
		profiles = append(profiles, p)
	case len(args) == 0:
		return errors.New("at least one file or --stdin is required")
	default:
		profiles, err = extractFiles(ctx, engine, args, config, logger)
		if err != nil {
			return err
		}
	}

	interactive, _ := cmd.Flags().GetBool("interactive")
	if interactive && len(profiles) == 1 {
		return interact(cmd.OutOrStdout(), logger, config.Output, profiles[0])
	}
	if interactive {
		logger.Warn("interactive mode needs a single document, rendering all profiles")
	}

	return profile.Render(cmd.OutOrStdout(), config.Output, profiles...)
}

// extractFiles decodes and extracts documents in parallel. Profiles keep the
// order of names; the first decoding failure aborts the whole run.
func extractFiles(ctx context.Context, engine *extraction.Engine, names []string, config *Config, log *zap.Logger) ([]profile.CandidateProfile, error) {
	profiles := make([]profile.CandidateProfile, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(config.Concurrency)

	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			doc, err := document.ReadFile(name, config.MaxDocumentSize)
			if err != nil {
				return err
			}

			profiles[i] = extractDocument(engine, doc, log)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info("extraction completed", zap.Int("documents", len(profiles)))

	return profiles, nil
}

func extractReader(engine *extraction.Engine, r io.Reader, limit int64, log *zap.Logger) (profile.CandidateProfile, error) {
	if limit <= 0 {
		limit = document.DefaultMaxSize
	}

	// one byte over the limit is enough for the decoder to reject the input
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return profile.CandidateProfile{}, &document.DecodeError{Name: stdinName, Err: err}
	}

	doc, err := document.Decode(stdinName, data, limit)
	if err != nil {
		return profile.CandidateProfile{}, err
	}

	return extractDocument(engine, doc, log), nil
}

func extractDocument(engine *extraction.Engine, doc *document.Document, log *zap.Logger) profile.CandidateProfile {
	docLogger := logger.WithDocument(log, doc.Name, doc.MIME)

	p := engine.Extract(doc.Text)

	docLogger.Info("profile extracted",
		zap.Int("fields_found", p.Found()),
		zap.String("seniority", string(p.Seniority)),
	)
	docLogger.Debug("profile summary", zap.String("summary_preview", logger.TruncateForLog(p.Summary, 80)))

	return p
}

func interact(w io.Writer, log *zap.Logger, format string, p profile.CandidateProfile) error {
	prompt := promptui.Select{
		Label: "Profile extracted. What next?",
		Items: []string{PromptPrint, PromptReport, PromptDump, PromptExit},
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			return err
		}

		if err := handleAction(action, w, log, format, p); err != nil {
			if errors.Is(err, errExit) {
				return nil
			}
			return err
		}
	}
}

func handleAction(action string, w io.Writer, log *zap.Logger, format string, p profile.CandidateProfile) error {
	switch action {
	case PromptPrint:
		return profile.Render(w, format, p)
	case PromptReport:
		report, err := profile.Report(p)
		if err != nil {
			return err
		}
		for _, key := range profile.ReportKeys(report) {
			fmt.Fprintf(w, "%-13s %s\n", key+":", report[key])
		}
		return nil
	case PromptDump:
		filename, err := profile.DumpToTmpFile(p)
		if err != nil {
			return fmt.Errorf("dump profile to file: %w", err)
		}
		log.Info("dumping profile to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		log.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}
