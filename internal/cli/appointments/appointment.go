package appointments

import (
	"fmt"

	"github.com/pulsecheck/pulse/internal/cli"
	"github.com/pulsecheck/pulse/internal/models"
)

type AppointmentListCmd struct {
	All bool `help:"Include cancelled and completed appointments."`
}

func (c *AppointmentListCmd) Run(ctx *cli.Context) error {
	user, err := ctx.UserID()
	if err != nil {
		return err
	}
	appts, err := ctx.Service.Appointments(user)
	if err != nil {
		return err
	}

	shown := 0
	for _, a := range appts {
		if !c.All && !a.IsActive() {
			continue
		}
		fmt.Println(cli.FormatAppointment(a))
		shown++
	}
	if shown == 0 {
		fmt.Println("No appointments.")
	}
	return nil
}

type AppointmentBookCmd struct {
	Clinic string `help:"Clinic ID or name (defaults to the nearest clinic)."`
	Date   string `help:"Day of the appointment (YYYY-MM-DD)." required:""`
	Time   string `help:"Time of the appointment (HH:MM)." required:""`
}

func (c *AppointmentBookCmd) Run(ctx *cli.Context) error {
	user, err := ctx.UserID()
	if err != nil {
		return err
	}
	clinic, err := resolveClinic(ctx, c.Clinic)
	if err != nil {
		return err
	}
	appt, err := ctx.Service.Book(user, clinic.ID, c.Date, c.Time)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Booked: %s\n", cli.FormatAppointment(appt))
	return nil
}

// TransitionArgs is shared by confirm, cancel and complete.
type TransitionArgs struct {
	ID string `arg:"" help:"Appointment ID or unique prefix."`
}

func (c *TransitionArgs) run(ctx *cli.Context, verb string, apply func(user, id string) (models.Appointment, error)) error {
	user, err := ctx.UserID()
	if err != nil {
		return err
	}
	id, err := ctx.ResolveAppointment(user, c.ID)
	if err != nil {
		return err
	}
	appt, err := apply(user, id)
	if err != nil {
		return err
	}
	fmt.Printf("✓ %s: %s\n", verb, cli.FormatAppointment(appt))
	return nil
}

type AppointmentConfirmCmd struct{ TransitionArgs }

func (c *AppointmentConfirmCmd) Run(ctx *cli.Context) error {
	return c.run(ctx, "Confirmed", ctx.Service.Confirm)
}

type AppointmentCancelCmd struct{ TransitionArgs }

func (c *AppointmentCancelCmd) Run(ctx *cli.Context) error {
	return c.run(ctx, "Cancelled", ctx.Service.Cancel)
}

type AppointmentCompleteCmd struct{ TransitionArgs }

func (c *AppointmentCompleteCmd) Run(ctx *cli.Context) error {
	return c.run(ctx, "Completed", ctx.Service.Complete)
}

type AppointmentRescheduleCmd struct {
	ID   string `arg:"" help:"Appointment ID or unique prefix."`
	Date string `help:"New day (YYYY-MM-DD)." required:""`
	Time string `help:"New time (HH:MM)." required:""`
}

func (c *AppointmentRescheduleCmd) Run(ctx *cli.Context) error {
	user, err := ctx.UserID()
	if err != nil {
		return err
	}
	id, err := ctx.ResolveAppointment(user, c.ID)
	if err != nil {
		return err
	}
	appt, err := ctx.Service.Reschedule(user, id, c.Date, c.Time)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Rescheduled: %s\n", cli.FormatAppointment(appt))
	return nil
}
