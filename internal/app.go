package internal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"addrbook/internal/controllers"
	"addrbook/internal/persistence/interfaces"
	"addrbook/internal/providers"
	"addrbook/internal/structures"
)

const (
	welcomeMessage = "Welcome to the assistant bot!"
	goodbyeMessage = "Address book saved. Good bye!"
	prompt         = "Enter a command: "
)

type App struct {
	controller *controllers.CommandController
	keeper     interfaces.KeeperInterface
	conf       *structures.Config
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
}

func NewApp(controller *controllers.CommandController, keeper interfaces.KeeperInterface, conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) *App {
	return &App{
		controller: controller,
		keeper:     keeper,
		conf:       conf,
		logger:     logger,
		metrics:    metrics,
	}
}

// Run restores the address book, serves commands read from in until the
// user exits, input ends or the process is interrupted, then saves.
func (a *App) Run(in io.Reader, out io.Writer) error {
	a.logger.Infof(providers.TypeApp, "Starting %s", a.conf.AppName)
	if err := a.keeper.Restore(); err != nil {
		a.logger.Errorf(providers.TypeApp, "Restore error: %s", err)
		return err
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	done := make(chan struct{})
	defer close(done)
	lines := readLines(in, done)

	fmt.Fprintln(out, welcomeMessage)
loop:
	for {
		fmt.Fprint(out, prompt)
		select {
		case <-stop:
			fmt.Fprintln(out)
			a.logger.Infof(providers.TypeApp, "Shutdown signal received")
			break loop
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				a.logger.Infof(providers.TypeApp, "Input closed")
				break loop
			}
			output, exit := a.controller.Handle(line)
			if exit {
				break loop
			}
			if output != "" {
				fmt.Fprintln(out, output)
			}
		}
	}

	return a.shutdown(out)
}

func (a *App) shutdown(out io.Writer) error {
	if err := a.keeper.Persist(); err != nil {
		a.logger.Errorf(providers.TypeApp, "Persist error: %s", err)
		fmt.Fprintf(out, "Unable to save address book: %s\n", err)
		return err
	}
	if err := a.metrics.Flush(); err != nil {
		a.logger.Warnf(providers.TypeApp, "Metrics flush error: %s", err)
	}
	fmt.Fprintln(out, goodbyeMessage)
	a.logger.Infof(providers.TypeApp, "gracefully stopped")
	return nil
}

// readLines forwards lines from in until it ends or done is closed.
func readLines(in io.Reader, done <-chan struct{}) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
	}()
	return lines
}

func (a *App) Close() {
	a.keeper.Close()
	a.logger.Close()
}
