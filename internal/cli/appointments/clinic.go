package appointments

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pulsecheck/pulse/internal/booking"
	"github.com/pulsecheck/pulse/internal/checkin"
	"github.com/pulsecheck/pulse/internal/cli"
	"github.com/pulsecheck/pulse/internal/models"
	"github.com/pulsecheck/pulse/internal/storage"
)

type ClinicAddCmd struct {
	Name     string  `arg:"" help:"Clinic name."`
	Address  string  `help:"Street address."`
	Distance float64 `help:"Distance from home in km; the nearest clinic is used for auto-booking."`
}

func (c *ClinicAddCmd) Run(ctx *cli.Context) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return errors.New("clinic name cannot be empty")
	}
	if c.Distance < 0 {
		return errors.New("distance cannot be negative")
	}
	clinic := models.Clinic{
		ID:         uuid.New().String(),
		Name:       name,
		Address:    strings.TrimSpace(c.Address),
		DistanceKm: c.Distance,
		CreatedAt:  time.Now(),
	}
	if err := ctx.Store.AddClinic(clinic); err != nil {
		return err
	}
	fmt.Printf("✓ Added clinic %s (%s)\n", clinic.Name, cli.ShortID(clinic.ID))
	return nil
}

type ClinicListCmd struct{}

func (c *ClinicListCmd) Run(ctx *cli.Context) error {
	clinics, err := ctx.Store.GetAllClinics()
	if err != nil {
		return err
	}
	if len(clinics) == 0 {
		fmt.Println("No clinics yet. Add one with 'pulse clinic add'.")
		return nil
	}
	nearest, _ := booking.Nearest(clinics)
	for _, cl := range clinics {
		mark := " "
		if cl.ID == nearest.ID {
			mark = "*"
		}
		fmt.Printf("%s %s  %-24s %5.1f km  %s\n", mark, cli.ShortID(cl.ID), cl.Name, cl.DistanceKm, cl.Address)
	}
	fmt.Println("\n* used for auto-booking")
	return nil
}

// resolveClinic finds a clinic by ID, ID prefix or case-insensitive name.
// An empty ref picks the nearest clinic.
func resolveClinic(ctx *cli.Context, ref string) (models.Clinic, error) {
	clinics, err := ctx.Store.GetAllClinics()
	if err != nil {
		return models.Clinic{}, err
	}
	if ref == "" {
		c, ok := booking.Nearest(clinics)
		if !ok {
			return models.Clinic{}, fmt.Errorf("%w; add one with 'pulse clinic add'", checkin.ErrNoClinic)
		}
		return c, nil
	}

	var matches []models.Clinic
	for _, c := range clinics {
		if c.ID == ref || strings.EqualFold(c.Name, ref) {
			return c, nil
		}
		if strings.HasPrefix(c.ID, ref) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return models.Clinic{}, fmt.Errorf("clinic %s: %w", ref, storage.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return models.Clinic{}, fmt.Errorf("clinic id %q is ambiguous", ref)
	}
}
