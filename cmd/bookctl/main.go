// Command bookctl talks to a running booking API from the terminal: list
// rooms, price a stay, and send a booking request the way the website's
// form does.
//
//	bookctl rooms
//	bookctl quote --room deluxe --check-in 2024-06-01 --check-out 2024-06-04
//	bookctl submit --room deluxe --check-in 2024-06-01 --check-out 2024-06-04 \
//	    --name "Tsering Dolma" --email tsering@example.com
//
// The API address comes from --api-url or BOOKING_API_URL.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
