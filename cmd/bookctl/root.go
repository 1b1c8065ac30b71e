package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reenamhotel/site/internal/bookingclient"
	"github.com/reenamhotel/site/internal/domain"
)

const defaultAPIURL = "http://localhost:4000"

// errNotDelivered is returned by submit when the API did not accept the
// request, so the process exits non-zero.
var errNotDelivered = errors.New("booking request not delivered")

func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:           "bookctl",
		Short:         "Reenam Hotel booking API client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("api-url", defaultAPIURL, "booking API base URL")
	root.PersistentFlags().Duration("timeout", 10*time.Second, "request timeout")
	_ = v.BindPFlag("api-url", root.PersistentFlags().Lookup("api-url"))
	_ = v.BindPFlag("timeout", root.PersistentFlags().Lookup("timeout"))
	_ = v.BindEnv("api-url", "BOOKING_API_URL")

	client := func() *bookingclient.Client {
		return bookingclient.NewClient(v.GetString("api-url"))
	}
	withTimeout := func(cmd *cobra.Command) (context.Context, context.CancelFunc) {
		return context.WithTimeout(cmd.Context(), v.GetDuration("timeout"))
	}

	root.AddCommand(
		newRoomsCmd(client, withTimeout),
		newQuoteCmd(client, withTimeout),
		newSubmitCmd(client, withTimeout),
	)
	return root
}

type clientFunc func() *bookingclient.Client

type timeoutFunc func(*cobra.Command) (context.Context, context.CancelFunc)

func newRoomsCmd(client clientFunc, withTimeout timeoutFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "rooms",
		Short: "List room categories and their online rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := withTimeout(cmd)
			defer cancel()

			rooms, err := client().Rooms(ctx)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SLUG\tNAME\tRATE")
			for _, r := range rooms {
				rate := "on request"
				if r.Bookable() {
					rate = fmt.Sprintf("%d", r.NightlyRate)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Slug, r.Name, rate)
			}
			return tw.Flush()
		},
	}
}

// stayFlags are the flags quote and submit share.
type stayFlags struct {
	room     string
	checkIn  string
	checkOut string
}

func (s *stayFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.room, "room", bookingclient.DefaultRoomType, "room type slug")
	cmd.Flags().StringVar(&s.checkIn, "check-in", "", "check-in date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&s.checkOut, "check-out", "", "check-out date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("check-in")
	_ = cmd.MarkFlagRequired("check-out")
}

func newQuoteCmd(client clientFunc, withTimeout timeoutFunc) *cobra.Command {
	var stay stayFlags
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a stay at the current online rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := time.Parse(domain.DateLayout, stay.checkIn)
			if err != nil {
				return fmt.Errorf("--check-in: %w", err)
			}
			out, err := time.Parse(domain.DateLayout, stay.checkOut)
			if err != nil {
				return fmt.Errorf("--check-out: %w", err)
			}

			ctx, cancel := withTimeout(cmd)
			defer cancel()
			rates, err := client().Rates(ctx)
			if err != nil {
				return err
			}
			rate, ok := rates.NightlyRate(stay.room)
			if !ok {
				return fmt.Errorf("room %q cannot be booked online (choose one of: %s)",
					stay.room, strings.Join(rates.RoomTypes(), ", "))
			}

			q := domain.NewQuote(in, out, rate)
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d night(s) x %d = %d\n", stay.room, q.Nights, q.PricePerNight, q.Total)
			return nil
		},
	}
	stay.register(cmd)
	return cmd
}

func newSubmitCmd(client clientFunc, withTimeout timeoutFunc) *cobra.Command {
	var (
		stay stayFlags
		form bookingclient.Form
	)
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Send a booking request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			form.RoomType = stay.room
			form.CheckIn = stay.checkIn
			form.CheckOut = stay.checkOut

			ctx, cancel := withTimeout(cmd)
			defer cancel()

			c := client()
			rates, err := c.Rates(ctx)
			if err != nil {
				return err
			}
			summary, err := form.Summarize(rates)
			if err != nil {
				return err
			}

			res := c.Submit(ctx, form, summary)
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			if !res.Delivered {
				return fmt.Errorf("%w: %v", errNotDelivered, res.Err)
			}
			return nil
		},
	}
	stay.register(cmd)
	cmd.Flags().IntVar(&form.Guests, "guests", 2, "number of guests")
	cmd.Flags().StringVar(&form.Name, "name", "", "guest full name")
	cmd.Flags().StringVar(&form.Email, "email", "", "guest email")
	cmd.Flags().StringVar(&form.Phone, "phone", "", "guest phone")
	cmd.Flags().StringVar(&form.SpecialRequests, "requests", "", "special requests")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
