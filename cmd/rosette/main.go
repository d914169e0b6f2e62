package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rosette-api/rosette-go/client"
	"github.com/rosette-api/rosette-go/internal/config"
	"github.com/rosette-api/rosette-go/internal/logger"
)

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	key        string
	serviceURL string
	timeout    time.Duration
	retries    int
	debug      bool
	envFile    string
	format     string
}

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "rosette",
		Short: "Command-line client for the Rosette text analytics API",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if g.debug {
				logger.InitConsole(zerolog.DebugLevel)
				log.Debug().Msg("debug logging enabled")
			} else {
				logger.InitConsole(zerolog.InfoLevel)
			}
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&g.key, "key", "", "Rosette API key (required)")
	pf.StringVar(&g.serviceURL, "service_url", "", "Optional service URL (default $ROSETTE_SERVICE_URL or "+client.DefaultServiceURL+")")
	pf.DurationVar(&g.timeout, "timeout", 0, "Per-request timeout (default $ROSETTE_TIMEOUT or 30s)")
	pf.IntVar(&g.retries, "retries", 0, "Retry transport errors and 408/429/5xx responses this many times")
	pf.BoolVarP(&g.debug, "debug", "d", false, "Enable verbose debug output, including HTTP dumps")
	pf.StringVar(&g.envFile, "env-file", ".env", "Dotenv file with ROSETTE_* settings (ignored if missing)")
	pf.StringVarP(&g.format, "format", "o", "json", "Output format: json|yaml")
	_ = rootCmd.MarkPersistentFlagRequired("key")

	rootCmd.AddCommand(newMorphologyCmd(g))
	rootCmd.AddCommand(newDocumentCmd(g, "language", "Identify the language of a document", client.OpLanguage))
	rootCmd.AddCommand(newDocumentCmd(g, "entities", "Extract named entities", client.OpEntities))
	rootCmd.AddCommand(newDocumentCmd(g, "categories", "Classify a document into categories", client.OpCategories))
	rootCmd.AddCommand(newDocumentCmd(g, "relationships", "Extract relationships between entities", client.OpRelationships))
	rootCmd.AddCommand(newDocumentCmd(g, "sentiment", "Score document and entity sentiment", client.OpSentiment))
	rootCmd.AddCommand(newDocumentCmd(g, "tokens", "Split a document into tokens", client.OpTokens))
	rootCmd.AddCommand(newDocumentCmd(g, "sentences", "Split a document into sentences", client.OpSentences))
	rootCmd.AddCommand(newDocumentCmd(g, "topics", "Extract key phrases and concepts", client.OpTopics))
	rootCmd.AddCommand(newNameTranslationCmd(g))
	rootCmd.AddCommand(newNameSimilarityCmd(g))
	rootCmd.AddCommand(newNoArgCmd(g, "ping", "Check that the service is reachable", client.OpPing))
	rootCmd.AddCommand(newNoArgCmd(g, "info", "Show service build information", client.OpInfo))

	return rootCmd
}

// newClient builds a client from ROSETTE_* settings overridden by flags.
func newClient(g *globalFlags) (*client.Client, *config.Config, error) {
	cfg, err := config.Load(g.envFile)
	if err != nil {
		return nil, nil, err
	}
	if g.serviceURL != "" {
		cfg.ServiceURL = g.serviceURL
	}
	if g.timeout > 0 {
		cfg.Timeout = g.timeout
	}
	if g.retries > 0 {
		cfg.MaxAttempts = g.retries + 1
	}
	cfg.Debug = cfg.Debug || g.debug

	c, err := client.New(g.key, cfg.ClientOptions()...)
	if err != nil {
		return nil, nil, err
	}
	return c, cfg, nil
}

// run sends op on the client's worker pool, waits for the single result and
// prints the response body as indented JSON or YAML.
func run(cmd *cobra.Command, g *globalFlags, op client.Operation, params *client.Parameters) error {
	if g.format != "json" && g.format != "yaml" {
		return fmt.Errorf("unsupported output format %q", g.format)
	}
	c, cfg, err := newClient(g)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout*time.Duration(cfg.MaxAttempts)+5*time.Second)
	defer cancel()

	log.Debug().
		Str("operation", string(op)).
		Str("service_url", c.ServiceURL()).
		Msg("sending request")

	start := time.Now()
	call := c.Go(ctx, op, params)
	resp, err := call.Wait(ctx)
	elapsed := time.Since(start)
	if err != nil {
		log.Debug().
			Err(err).
			Str("operation", string(op)).
			Str("call_id", call.ID).
			Int("status_code", client.StatusCode(err)).
			Dur("elapsed", elapsed).
			Msg("request failed")
		return err
	}

	log.Debug().
		Str("operation", string(op)).
		Str("call_id", call.ID).
		Int("status_code", resp.StatusCode).
		Dur("elapsed", elapsed).
		Msg("request completed")

	if g.format == "yaml" {
		return printYAML(cmd.OutOrStdout(), resp)
	}
	return printJSON(cmd.OutOrStdout(), resp.Body)
}

func printYAML(w io.Writer, resp *client.Response) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(resp.Data); err != nil {
		return fmt.Errorf("format response: %w", err)
	}
	return enc.Close()
}

func printJSON(w io.Writer, body []byte) error {
	if len(bytes.TrimSpace(body)) == 0 {
		_, err := fmt.Fprintln(w, "{}")
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		return fmt.Errorf("format response: %w", err)
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(w)
	return err
}
