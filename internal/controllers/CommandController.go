package controllers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"addrbook/internal/models"
	"addrbook/internal/providers"
	"addrbook/internal/services"
)

const (
	msgInvalidCommand = "Invalid command."
	msgNotEnoughArgs  = "Not enough arguments."
	msgTooManyArgs    = "Too many arguments."
)

var (
	errNotEnoughArgs = errors.New("not enough arguments")
	errTooManyArgs   = errors.New("too many arguments")
)

type command struct {
	usage   string
	minArgs int
	maxArgs int
	run     func(args []string) (string, error)
}

// CommandController turns one line of user input into one directory
// operation and renders the outcome as text.
type CommandController struct {
	logger   providers.Logger
	service  services.DirectoryServiceInterface
	metrics  providers.MetricsProviderInterface
	commands map[string]*command
	order    []string
}

func NewCommandController(logger providers.Logger, service services.DirectoryServiceInterface, metrics providers.MetricsProviderInterface) *CommandController {
	cc := &CommandController{
		logger:   logger,
		service:  service,
		metrics:  metrics,
		commands: make(map[string]*command),
	}
	cc.register([]string{"hello"}, &command{usage: "hello", run: cc.hello})
	cc.register([]string{"add"}, &command{usage: "add <name> <phone>", minArgs: 2, maxArgs: 2, run: cc.addContact})
	cc.register([]string{"change", "edit"}, &command{usage: "change <name> <old phone> <new phone>", minArgs: 3, maxArgs: 3, run: cc.changeContact})
	cc.register([]string{"phone"}, &command{usage: "phone <name>", minArgs: 1, maxArgs: 1, run: cc.showPhone})
	cc.register([]string{"remove-phone"}, &command{usage: "remove-phone <name> <phone>", minArgs: 2, maxArgs: 2, run: cc.removePhone})
	cc.register([]string{"delete", "remove"}, &command{usage: "delete <name>", minArgs: 1, maxArgs: 1, run: cc.deleteContact})
	cc.register([]string{"all", "show"}, &command{usage: "all", run: cc.showAll})
	cc.register([]string{"add-birthday"}, &command{usage: "add-birthday <name> <DD.MM.YYYY>", minArgs: 2, maxArgs: 2, run: cc.addBirthday})
	cc.register([]string{"show-birthday"}, &command{usage: "show-birthday <name>", minArgs: 1, maxArgs: 1, run: cc.showBirthday})
	cc.register([]string{"birthdays"}, &command{usage: "birthdays [days]", maxArgs: 1, run: cc.birthdays})
	cc.register([]string{"help"}, &command{usage: "help", run: cc.help})
	cc.register([]string{"close", "exit"}, &command{usage: "exit", run: nil})
	return cc
}

func (cc *CommandController) register(names []string, c *command) {
	for _, n := range names {
		cc.commands[n] = c
	}
	cc.order = append(cc.order, names[0])
}

// ParseInput splits a line into a lower-cased command and its arguments.
func ParseInput(line string) (string, []string) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return "", nil
	}
	return strings.ToLower(parts[0]), parts[1:]
}

// Handle executes one input line. exit is true when the user asked to
// leave; saving is the caller's job.
func (cc *CommandController) Handle(line string) (output string, exit bool) {
	name, args := ParseInput(line)
	if name == "" {
		return "", false
	}

	cmd, ok := cc.commands[name]
	if !ok {
		cc.metrics.IncCommandsTotal("unknown", "invalid")
		cc.logger.Debugf(providers.TypeCommand, "Unknown command %q", name)
		return msgInvalidCommand, false
	}
	if cmd.run == nil {
		cc.metrics.IncCommandsTotal(name, "ok")
		cc.logger.Infof(providers.GetLogTypeByCommand(name), "Exit requested")
		return "", true
	}

	var err error
	switch {
	case len(args) < cmd.minArgs:
		err = errNotEnoughArgs
	case len(args) > cmd.maxArgs:
		err = errTooManyArgs
	default:
		output, err = cmd.run(args)
	}

	result := resultLabel(err)
	cc.metrics.IncCommandsTotal(name, result)
	if err != nil {
		cc.logger.Debugf(providers.GetLogTypeByCommand(name), "Command %s failed (%s): %s", name, result, err)
		return errorMessage(err, cmd.usage), false
	}
	cc.logger.Debugf(providers.GetLogTypeByCommand(name), "Command %s succeeded", name)
	return output, false
}

func (cc *CommandController) hello(_ []string) (string, error) {
	return "How can I help you?", nil
}

func (cc *CommandController) addContact(args []string) (string, error) {
	created, err := cc.service.AddContact(args[0], args[1])
	if err != nil {
		return "", err
	}
	if created {
		return "Contact added.", nil
	}
	return "Contact updated.", nil
}

func (cc *CommandController) changeContact(args []string) (string, error) {
	if err := cc.service.ChangePhone(args[0], args[1], args[2]); err != nil {
		return "", err
	}
	return "Phone number updated.", nil
}

func (cc *CommandController) showPhone(args []string) (string, error) {
	phones, err := cc.service.GetPhones(args[0])
	if err != nil {
		return "", err
	}
	if len(phones) == 0 {
		return "No phones", nil
	}
	return strings.Join(phones, "; "), nil
}

func (cc *CommandController) removePhone(args []string) (string, error) {
	if err := cc.service.RemovePhone(args[0], args[1]); err != nil {
		return "", err
	}
	return "Phone number removed.", nil
}

func (cc *CommandController) deleteContact(args []string) (string, error) {
	if err := cc.service.DeleteContact(args[0]); err != nil {
		return "", err
	}
	return "Contact deleted.", nil
}

func (cc *CommandController) showAll(_ []string) (string, error) {
	lines := cc.service.DescribeAll()
	if len(lines) == 0 {
		return "Address book is empty.", nil
	}
	return strings.Join(lines, "\n"), nil
}

func (cc *CommandController) addBirthday(args []string) (string, error) {
	if err := cc.service.AddBirthday(args[0], args[1]); err != nil {
		return "", err
	}
	return fmt.Sprintf("Birthday added for %s.", args[0]), nil
}

func (cc *CommandController) showBirthday(args []string) (string, error) {
	b, ok, err := cc.service.GetBirthday(args[0])
	if err != nil {
		return "", err
	}
	if !ok {
		return "No birthday found.", nil
	}
	return fmt.Sprintf("%s's birthday is on %s", args[0], b), nil
}

func (cc *CommandController) birthdays(args []string) (string, error) {
	horizon := cc.service.DefaultHorizon()
	if len(args) == 1 {
		days, err := strconv.Atoi(args[0])
		if err != nil {
			return "", &models.Error{Op: "birthdays", Kind: models.KindValidation, Msg: "Days must be a whole number.", Err: err}
		}
		horizon = days
	}

	upcoming, err := cc.service.UpcomingBirthdays(horizon)
	if err != nil {
		return "", err
	}
	if len(upcoming) == 0 {
		if horizon == models.DefaultHorizonDays {
			return "No birthdays next week.", nil
		}
		return fmt.Sprintf("No birthdays in the next %d days.", horizon), nil
	}

	lines := make([]string, len(upcoming))
	for i, u := range upcoming {
		lines[i] = fmt.Sprintf("%s: %s", u.Name, u.Date.Format(models.BirthdayLayout))
	}
	return strings.Join(lines, "\n"), nil
}

func (cc *CommandController) help(_ []string) (string, error) {
	lines := make([]string, 0, len(cc.order))
	for _, n := range cc.order {
		lines = append(lines, "  "+cc.commands[n].usage)
	}
	return "Commands:\n" + strings.Join(lines, "\n"), nil
}

func resultLabel(err error) string {
	var e *models.Error
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, errNotEnoughArgs), errors.Is(err, errTooManyArgs):
		return "usage"
	case errors.As(err, &e):
		return string(e.Kind)
	default:
		return "error"
	}
}

func errorMessage(err error, usage string) string {
	switch {
	case errors.Is(err, errNotEnoughArgs):
		return msgNotEnoughArgs + " Usage: " + usage
	case errors.Is(err, errTooManyArgs):
		return msgTooManyArgs + " Usage: " + usage
	default:
		return models.Message(err)
	}
}
