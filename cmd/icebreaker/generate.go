package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/icebreaker/internal/icebreaker"
)

type generateOptions struct {
	sender    string
	receiver  string
	objective string
	challenge string
	style     string
	asJSON    bool
}

func newGenerateCmd(e env) *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate icebreakers once and print them",
		Long: `Fetch both profiles, call the configured model and print the messages.

Example:
  icebreaker generate \
    --sender https://www.linkedin.com/in/alice \
    --receiver https://www.linkedin.com/in/bob \
    --objective "Explore a data partnership" \
    --challenge "Their pipelines are siloed" \
    --style casual`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, e, opts)
		},
	}

	cmd.Flags().StringVar(&opts.sender, "sender", "", "sender LinkedIn profile URL")
	cmd.Flags().StringVar(&opts.receiver, "receiver", "", "receiver LinkedIn profile URL")
	cmd.Flags().StringVar(&opts.objective, "objective", "", "what the sender wants to propose")
	cmd.Flags().StringVar(&opts.challenge, "challenge", "", "problem the receiver may be facing (optional)")
	cmd.Flags().StringVar(&opts.style, "style", "", "preset style id or free-text tone (optional)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the result as JSON")
	_ = cmd.MarkFlagRequired("sender")
	_ = cmd.MarkFlagRequired("receiver")
	_ = cmd.MarkFlagRequired("objective")

	return cmd
}

func runGenerate(cmd *cobra.Command, e env, opts generateOptions) error {
	cfg := e.loadConfig()
	log := e.newLogger(cfg)
	defer func() { _ = log.Sync() }()

	gen, closeFn, err := e.build(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer closeFn()

	res, err := gen.Generate(cmd.Context(), icebreaker.Request{
		SenderURL:   opts.sender,
		ReceiverURL: opts.receiver,
		Objective:   opts.objective,
		Challenge:   opts.challenge,
		Style:       opts.style,
	})
	if err != nil {
		var ierr *icebreaker.Error
		if errors.As(err, &ierr) {
			return fmt.Errorf("%s: %s", ierr.Kind, ierr.Message)
		}
		return err
	}

	if opts.asJSON {
		return writeResultJSON(cmd.OutOrStdout(), res)
	}
	writeResultText(cmd.OutOrStdout(), res)
	return nil
}

func writeResultText(w io.Writer, res icebreaker.Result) {
	if !res.Structured {
		fmt.Fprintln(w, res.Messages[0])
		return
	}
	for i, m := range res.Messages {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "Message %d:\n%s\n", i+1, m)
	}
}

func writeResultJSON(w io.Writer, res icebreaker.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		ID         string   `json:"id"`
		CreatedAt  string   `json:"createdAt"`
		Messages   []string `json:"messages"`
		Structured bool     `json:"structured"`
	}{
		ID:         res.ID.String(),
		CreatedAt:  res.CreatedAt.UTC().Format(time.RFC3339),
		Messages:   res.Messages,
		Structured: res.Structured,
	})
}
