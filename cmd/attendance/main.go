// Command attendance is the employee-facing front-end for the HR backend:
// log in, check today's status, clock in and out, or watch the live
// working-hours counter tick.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"hris-attendance/config"
	"hris-attendance/internal/controller"
	"hris-attendance/internal/gateway"
	"hris-attendance/internal/model"
	"hris-attendance/internal/session"
	"hris-attendance/internal/timeutil"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional for the CLI
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	store := session.NewStore(session.NewFileStorage(sessionFilePath()))
	store.Init()

	gw := gateway.New(config.GetEnv("HRIS_API_URL", "http://localhost:3000"))
	ctx := context.Background()

	var err error
	switch os.Args[1] {
	case "login":
		err = runLogin(ctx, gw, store, os.Args[2:])
	case "logout":
		store.Logout()
		fmt.Println("Logged out.")
	case "status":
		err = runStatus(ctx, gw, store)
	case "clock-in":
		err = runClockIn(ctx, gw, store)
	case "clock-out":
		err = runClockOut(ctx, gw, store)
	case "watch":
		err = runWatch(ctx, gw, store)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: attendance <command>

commands:
  login -email <email> -password <password>
  logout
  status      show today's attendance record
  clock-in    mark the start of the workday
  clock-out   mark the end of the workday
  watch       live working-hours counter (Ctrl-C to stop)`)
}

func sessionFilePath() string {
	if path := config.GetEnv("HRIS_SESSION_FILE", ""); path != "" {
		return path
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "hris-attendance", "session.json")
}

func runLogin(ctx context.Context, gw *gateway.Client, store *session.Store, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	if *email == "" || *password == "" {
		return fmt.Errorf("both -email and -password are required")
	}

	resp, err := gw.Login(ctx, *email, *password)
	if err != nil {
		return fmt.Errorf("%s", gateway.UserMessage(err))
	}

	store.Login(session.Identity{
		ID:    strconv.FormatUint(uint64(resp.User.ID), 10),
		Email: resp.User.Email,
		Name:  resp.User.FullName,
		Role:  resp.User.Role,
	}, resp.Token)

	fmt.Printf("Logged in as %s (%s).\n", resp.User.FullName, resp.User.Role)
	if resp.User.Role == model.RoleAdmin {
		fmt.Println("Your dashboard: /admin/dashboard")
	} else {
		fmt.Println("Your dashboard: /employee/dashboard")
	}
	return nil
}

// newController wires a controller that prints notifications to the
// terminal.
func newController(gw *gateway.Client, store *session.Store, opts ...controller.Option) *controller.Controller {
	opts = append(opts, controller.WithNotify(func(n controller.Notification) {
		switch n.Kind {
		case controller.NoticeSuccess:
			fmt.Println(n.Message)
		case controller.NoticeSessionExpired:
			fmt.Fprintln(os.Stderr, n.Message+" Run `attendance login` to start a new one.")
		default:
			fmt.Fprintln(os.Stderr, n.Message)
		}
	}))
	return controller.New(gw, store, opts...)
}

func requireSession(store *session.Store) error {
	if !store.Authenticated() {
		return fmt.Errorf("not logged in; run `attendance login` first")
	}
	return nil
}

func runStatus(ctx context.Context, gw *gateway.Client, store *session.Store) error {
	if err := requireSession(store); err != nil {
		return err
	}

	ctrl := newController(gw, store)
	defer ctrl.Close()
	if err := ctrl.Start(ctx); err != nil {
		return err
	}

	snap := ctrl.Snapshot()
	switch snap.State {
	case controller.StateCheckedIn:
		fmt.Printf("Checked in at %s\n", timeutil.Format12Hour(snap.CheckInAt))
		fmt.Printf("Working hours so far: %.2f\n", snap.LiveHours)
	default:
		if snap.Record != nil && snap.Record.ClockOut != nil {
			fmt.Printf("Workday complete: %s - %s (%s hours, %s)\n",
				timeutil.FormatClock(snap.Record.ClockIn),
				timeutil.FormatClock(*snap.Record.ClockOut),
				snap.Record.TotalHours,
				snap.Record.Status)
		} else {
			fmt.Println("Not checked in today.")
		}
	}
	return nil
}

func runClockIn(ctx context.Context, gw *gateway.Client, store *session.Store) error {
	if err := requireSession(store); err != nil {
		return err
	}

	ctrl := newController(gw, store)
	defer ctrl.Close()
	if err := ctrl.Start(ctx); err != nil {
		return err
	}

	// Notifications already cover gateway failures; state guards still
	// need to be reported.
	if err := ctrl.ClockIn(ctx); err != nil {
		return err
	}
	return nil
}

func runClockOut(ctx context.Context, gw *gateway.Client, store *session.Store) error {
	if err := requireSession(store); err != nil {
		return err
	}

	ctrl := newController(gw, store)
	defer ctrl.Close()
	if err := ctrl.Start(ctx); err != nil {
		return err
	}

	if err := ctrl.ClockOut(ctx); err != nil {
		return err
	}
	return nil
}

func runWatch(ctx context.Context, gw *gateway.Client, store *session.Store) error {
	if err := requireSession(store); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctrl := newController(gw, store, controller.WithOnChange(func(snap controller.Snapshot) {
		if snap.State == controller.StateCheckedIn {
			fmt.Printf("\rWorking hours: %.2f ", snap.LiveHours)
		}
	}))
	defer ctrl.Close()
	if err := ctrl.Start(ctx); err != nil {
		return err
	}

	snap := ctrl.Snapshot()
	if snap.State != controller.StateCheckedIn {
		fmt.Println("Not checked in today; nothing to watch.")
		return nil
	}

	fmt.Printf("Checked in at %s\n", timeutil.Format12Hour(snap.CheckInAt))
	<-ctx.Done()
	fmt.Println()
	return nil
}
