package nudges

import (
	"fmt"

	"github.com/pulsecheck/pulse/internal/cli"
	"github.com/pulsecheck/pulse/internal/cli/checkins"
)

type NudgeStatusCmd struct {
	History bool `help:"List every nudge issued."`
}

func (c *NudgeStatusCmd) Run(ctx *cli.Context) error {
	user, err := ctx.UserID()
	if err != nil {
		return err
	}
	st, err := ctx.Service.Status(user)
	if err != nil {
		return err
	}

	rec := st.Record
	fmt.Printf("Nudges for %s\n", user)
	fmt.Printf("  Escalation count:  %d\n", rec.Count)
	fmt.Printf("  Dismissed nudges:  %d\n", st.Dismissed)
	if rec.LastNudgeDate != nil {
		state := "open"
		if rec.Dismissed {
			state = "dismissed"
		}
		fmt.Printf("  Last nudge:        %s (%s)\n", *rec.LastNudgeDate, state)
	} else {
		fmt.Println("  Last nudge:        never")
	}
	if rec.LastCheckupDate != nil {
		fmt.Printf("  Last checkup:      %s\n", *rec.LastCheckupDate)
	}
	if st.Upcoming != nil {
		fmt.Printf("  Upcoming:          %s\n", cli.FormatAppointment(*st.Upcoming))
	}

	if c.History && len(st.History) > 0 {
		fmt.Println("\nHistory:")
		for _, h := range st.History {
			mark := " "
			if h.Dismissed {
				mark = "x"
			}
			fmt.Printf("  [%s] %s  %-18s %s\n", mark, h.Day, h.Reason, h.Message)
		}
	}
	return nil
}

type NudgeDismissCmd struct{}

func (c *NudgeDismissCmd) Run(ctx *cli.Context) error {
	user, err := ctx.UserID()
	if err != nil {
		return err
	}
	ok, appt, err := ctx.Service.Dismiss(user)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Nothing to dismiss.")
		return nil
	}
	fmt.Println("Nudge dismissed.")
	if appt != nil {
		fmt.Printf("\n📅 You've put this off a few times, so we booked a checkup for you:\n   %s\n", cli.FormatAppointment(*appt))
		fmt.Println("   Reschedule or cancel it with 'pulse appointment'.")
	}
	return nil
}

type NudgeEvaluateCmd struct{}

func (c *NudgeEvaluateCmd) Run(ctx *cli.Context) error {
	user, err := ctx.UserID()
	if err != nil {
		return err
	}
	res, err := ctx.Service.Evaluate(user)
	if err != nil {
		return err
	}
	checkins.PrintResult(res)
	if !res.Decision.ShouldNudge && res.Appointment == nil {
		fmt.Println("No new nudge.")
	}
	return nil
}
