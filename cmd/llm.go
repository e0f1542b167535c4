package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/javalearn/internal/llm"
	"github.com/abhisek/javalearn/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the LLM calls made while generating quizzes",
}

// withEvents runs fn against the event log of the configured store.
func withEvents(cmd *cobra.Command, fn func(repo store.EventRepo, out io.Writer) error) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	st, err := e.openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	return fn(st.EventRepo(), cmd.OutOrStdout())
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		return withEvents(cmd, func(repo store.EventRepo, out io.Writer) error {
			events, err := repo.QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit})
			if err != nil {
				return fmt.Errorf("query events: %w", err)
			}
			writeEventList(out, events, purpose)
			return nil
		})
	},
}

func writeEventList(out io.Writer, events []store.LLMEvent, purpose string) {
	t := newTable("ID", "Time", "Purpose", "Model", "In", "Out", "Ms", "OK")
	rows := 0
	for _, ev := range events {
		if purpose != "" && ev.Purpose != purpose {
			continue
		}
		ok := "✓"
		if !ev.Success {
			ok = "✗"
		}
		t.Row(strconv.Itoa(ev.ID), stamp(ev.Timestamp), ev.Purpose, truncate(ev.Model, 28),
			strconv.Itoa(ev.InputTokens), strconv.Itoa(ev.OutputTokens),
			strconv.FormatInt(ev.LatencyMs, 10), ok)
		rows++
	}
	if rows == 0 {
		fmt.Fprintln(out, "No LLM calls recorded.")
		return
	}
	printSection(out, "LLM calls", t)
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the request and response of one LLM call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}
		return withEvents(cmd, func(repo store.EventRepo, out io.Writer) error {
			ev, err := repo.GetLLMEvent(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("get event: %w", err)
			}
			if ev == nil {
				return fmt.Errorf("event %d not found", id)
			}
			writeEvent(out, ev)
			return nil
		})
	},
}

func writeEvent(out io.Writer, ev *store.LLMEvent) {
	fields := [][2]string{
		{"ID", strconv.Itoa(ev.ID)},
		{"Time", ev.Timestamp.Local().Format("2006-01-02 15:04:05")},
		{"Provider", ev.Provider},
		{"Model", ev.Model},
		{"Purpose", ev.Purpose},
		{"Tokens", fmt.Sprintf("%d in / %d out", ev.InputTokens, ev.OutputTokens)},
		{"Latency", fmt.Sprintf("%dms", ev.LatencyMs)},
		{"Success", strconv.FormatBool(ev.Success)},
	}
	if ev.ErrorMessage != "" {
		fields = append(fields, [2]string{"Error", ev.ErrorMessage})
	}
	for _, f := range fields {
		fmt.Fprintf(out, "%-10s %s\n", f[0]+":", f[1])
	}

	rule := strings.Repeat("─", 60)
	for _, body := range [][2]string{{"REQUEST", ev.RequestBody}, {"RESPONSE", ev.ResponseBody}} {
		text := body[1]
		if text == "" {
			text = "(not captured)"
		}
		fmt.Fprintf(out, "\n%s\n%s\n%s\n%s\n", rule, body[0], rule, text)
	}
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEvents(cmd, func(repo store.EventRepo, out io.Writer) error {
			ctx := cmd.Context()
			purposes, err := repo.LLMUsageByPurpose(ctx)
			if err != nil {
				return fmt.Errorf("query usage: %w", err)
			}
			if len(purposes) == 0 {
				fmt.Fprintln(out, "No LLM usage recorded yet.")
				return nil
			}
			models, err := repo.LLMUsageByModel(ctx)
			if err != nil {
				return fmt.Errorf("query model usage: %w", err)
			}
			writeUsage(out, purposes, models)
			return nil
		})
	},
}

func writeUsage(out io.Writer, purposes []store.PurposeUsage, models []store.ModelUsage) {
	t := newTable("Purpose", "Calls", "Input", "Output", "Total", "Avg ms")
	var calls, in, outTok int
	for _, u := range purposes {
		t.Row(u.Purpose, strconv.Itoa(u.Calls), strconv.Itoa(u.InputTokens),
			strconv.Itoa(u.OutputTokens), strconv.Itoa(u.InputTokens+u.OutputTokens),
			strconv.Itoa(u.AvgLatencyMs))
		calls += u.Calls
		in += u.InputTokens
		outTok += u.OutputTokens
	}
	t.Row("TOTAL", strconv.Itoa(calls), strconv.Itoa(in), strconv.Itoa(outTok), strconv.Itoa(in+outTok), "")
	printSection(out, "Usage by purpose", t)

	if len(models) == 0 {
		return
	}
	var (
		total   float64
		unknown []string
	)
	t = newTable("Model", "Calls", "Input", "Output", "Cost")
	for _, u := range models {
		cost := "?"
		if c := llm.LookupCost(u.Model); c != nil {
			usd := c.Cost(u.InputTokens, u.OutputTokens)
			total += usd
			cost = formatCost(usd)
		} else {
			unknown = append(unknown, u.Model)
		}
		t.Row(truncate(u.Model, 32), strconv.Itoa(u.Calls), strconv.Itoa(u.InputTokens),
			strconv.Itoa(u.OutputTokens), cost)
	}
	label := "TOTAL"
	if len(unknown) > 0 {
		label = "TOTAL (partial)"
	}
	t.Row(label, "", "", "", formatCost(total))

	fmt.Fprintln(out)
	printSection(out, "Estimated cost (USD)", t)
	if len(unknown) > 0 {
		fmt.Fprintf(out, "\nPricing unavailable for: %s\n", strings.Join(unknown, ", "))
	}
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show calls with this purpose (e.g. quiz-gen)")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
