package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/arowley/prepsprint/internal/domain"
)

func newRoundCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "round",
		Short: "Record interview rounds and feedback",
	}

	cmd.AddCommand(
		newRoundAddCmd(app),
		newRoundFeedbackCmd(app),
	)

	return cmd
}

func newRoundAddCmd(app *App) *cobra.Command {
	var roundType, when, notes string
	var questions []string

	cmd := &cobra.Command{
		Use:   "add APPLICATION",
		Short: "Add an interview round to an application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveApplicationID(ctx, app, args[0])
			if err != nil {
				return err
			}

			round := &domain.InterviewRound{
				RoundType: domain.RoundType(roundType),
				Notes:     notes,
				Questions: questions,
			}
			if when != "" {
				scheduled, err := app.Dates.Resolve(when, time.Now().UTC())
				if err != nil {
					return err
				}
				round.ScheduledDate = &scheduled
			}

			if err := app.Applications.AddRound(ctx, id, round); err != nil {
				return err
			}

			fmt.Printf("Added round %d: %s\n", round.RoundNumber, round.RoundType.Label())
			if !round.RoundType.Known() {
				fmt.Printf("Note: %q is not a stage prepsprint knows; it is kept as typed.\n", roundType)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&roundType, "type", "", "Round type (hr|technical_1|technical_2|system_design|managerial|assignment|final, or anything else)")
	cmd.Flags().StringVar(&when, "date", "", "Scheduled date (YYYY-MM-DD, today, tomorrow)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	cmd.Flags().StringArrayVar(&questions, "question", nil, "Question asked (repeatable)")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func newRoundFeedbackCmd(app *App) *cobra.Command {
	var rating int
	var pros, cons, struggled []string
	var notes string

	cmd := &cobra.Command{
		Use:   "feedback ROUND_ID",
		Short: "Record how an interview round went",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fb := domain.Feedback{
				Rating:          rating,
				Pros:            pros,
				Cons:            cons,
				StruggledTopics: struggled,
				Notes:           notes,
			}
			if err := app.Applications.RecordFeedback(context.Background(), args[0], fb); err != nil {
				return err
			}
			fmt.Printf("Recorded feedback (rating %d/5)\n", rating)
			return nil
		},
	}

	cmd.Flags().IntVar(&rating, "rating", 0, "Self-rating 1-5")
	cmd.Flags().StringArrayVar(&pros, "pro", nil, "What went well (repeatable)")
	cmd.Flags().StringArrayVar(&cons, "con", nil, "What went poorly (repeatable)")
	cmd.Flags().StringArrayVar(&struggled, "struggled", nil, "Topic you struggled with (repeatable)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	_ = cmd.MarkFlagRequired("rating")

	return cmd
}
