package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jwulff/cineai/internal/logging"
	"github.com/jwulff/cineai/internal/predict"
	"github.com/jwulff/cineai/internal/ui"
	"github.com/spf13/cobra"
)

const outputWidth = 80

var asJSON bool

var predictCmd = &cobra.Command{
	Use:   "predict [text...]",
	Short: "Predict the genre of one synopsis and exit",
	Long:  `Predict reads the synopsis from the arguments, or from stdin when none are given, and prints the result.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, err := logging.NewFile(cfg.LogFile, opts.debug)
		if err != nil {
			return err
		}
		defer logger.Sync()

		text, err := readText(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}

		_, ctrl := newController(cfg, logger)
		st := ctrl.Predict(cmd.Context(), text)

		out := cmd.OutOrStdout()
		if asJSON {
			if err := writeJSON(out, st); err != nil {
				return err
			}
		} else if st.Phase == predict.Succeeded {
			fmt.Fprintln(out, ui.RenderResult(*st.Result, outputWidth))
			fmt.Fprintln(out)
			fmt.Fprintln(out, ui.RenderBarChart(predict.ToChartData(*st.Result), outputWidth))
		}

		if st.Phase == predict.Failed {
			return errors.New(st.Message)
		}
		return nil
	},
}

func init() {
	predictCmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	rootCmd.AddCommand(predictCmd)
}

// readText joins args, or reads all of r when there are none. A single
// trailing newline from stdin is dropped.
func readText(r io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	text := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(text, "\r"), nil
}

type failureOutput struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func writeJSON(w io.Writer, st predict.ViewState) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if st.Phase == predict.Succeeded {
		return enc.Encode(st.Result)
	}
	return enc.Encode(failureOutput{Error: st.Message, Kind: st.Kind.String()})
}
