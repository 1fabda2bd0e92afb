// Command contact fills in and submits the portfolio contact form from a terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/form"
	"github.com/portfolio/backend/internal/logging"
	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/pkg/contactclient"
	"github.com/portfolio/backend/pkg/relay"
)

const (
	viaAPI   = "api"
	viaRelay = "relay"
)

var errUnknownVia = errors.New("unknown -via value")

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("")
		logging.Fatal("invalid configuration", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, cfg.Client))
}

func run(ctx context.Context, args []string, out io.Writer, client config.ClientConfig) int {
	fs := flag.NewFlagSet("contact", flag.ContinueOnError)
	fs.SetOutput(out)
	name := fs.String("name", "", "your name")
	email := fs.String("email", "", "your email address")
	subject := fs.String("subject", "", "one of: "+subjectValues())
	message := fs.String("message", "", "message text")
	via := fs.String("via", viaAPI, "delivery path: api or relay")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	submitter, err := newSubmitter(*via, client)
	if err != nil {
		fmt.Fprintf(out, "%s: %q\n", err, *via)
		return 2
	}

	f := form.New(submitter, client.FallbackEmail)
	for field, value := range map[string]string{
		form.FieldName:    *name,
		form.FieldEmail:   *email,
		form.FieldSubject: *subject,
		form.FieldMessage: *message,
	} {
		if err := f.Set(field, value); err != nil {
			fmt.Fprintln(out, err)
			return 2
		}
	}

	err = f.Submit(ctx)
	st := f.State()
	if err != nil {
		fail := color.New(color.FgRed).SprintFunc()
		fmt.Fprintln(out, fail(st.Notice))
		slog.Debug("contact submission failed", "via", *via, "status", st.Status, "error", err)
		return 1
	}

	ok := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintln(out, ok(st.Notice))
	return 0
}

func newSubmitter(via string, client config.ClientConfig) (form.Submitter, error) {
	switch via {
	case viaAPI:
		return form.APISubmitter{Client: contactclient.NewClient(client.APIURL)}, nil
	case viaRelay:
		return form.RelaySubmitter{
			Client: relay.NewClient(client.RelayEndpoint, client.RelayAccessKey, client.RelayFromName),
		}, nil
	default:
		return nil, errUnknownVia
	}
}

func subjectValues() string {
	values := make([]string, 0, len(model.Subjects))
	for _, s := range model.Subjects {
		values = append(values, s.Value)
	}
	return strings.Join(values, ", ")
}
