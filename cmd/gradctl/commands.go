package main

import (
	"fmt"
	"io"
	"net/http"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/yigit/gradtracker/internal/app/models/dto"
	"github.com/yigit/gradtracker/internal/client"
	"github.com/yigit/gradtracker/internal/pkg/fieldcrypt"
)

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "gradctl",
		Usage:     "register, search and verify graduate destination records",
		Writer:    out,
		ErrWriter: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Value:   "http://localhost:8080",
				Usage:   "base URL of the graduate tracker API",
				EnvVars: []string{"GRADTRACKER_URL"},
			},
			&cli.StringFlag{
				Name:    "key",
				Usage:   "shared encryption key, used to show security questions in clear",
				EnvVars: []string{"CRYPTO_KEY"},
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: client.DefaultTimeout,
				Usage: "per-request timeout",
			},
		},
		Commands: []*cli.Command{
			registerCommand(),
			searchCommand(),
			verifyCommand(),
		},
	}
}

func apiClient(c *cli.Context) (*client.Client, error) {
	return client.New(c.String("server"),
		client.WithHTTPClient(&http.Client{Timeout: c.Duration("timeout")}))
}

func registerCommand() *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "register a graduate",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Required: true},
			&cli.StringFlag{Name: "highschool", Required: true},
			&cli.StringFlag{Name: "year", Required: true, Usage: "graduation year, e.g. 2023"},
			&cli.StringFlag{Name: "class"},
			&cli.StringFlag{Name: "type", Value: "university", Usage: "destination type"},
			&cli.StringFlag{Name: "destination", Required: true},
			&cli.StringFlag{Name: "description"},
			&cli.StringFlag{Name: "question", Required: true, Usage: "security question"},
			&cli.StringFlag{Name: "answer", Required: true, Usage: "security answer"},
		},
		Action: func(c *cli.Context) error {
			api, err := apiClient(c)
			if err != nil {
				return err
			}

			id, err := api.Register(c.Context, dto.RegisterGraduateRequest{
				Name:             c.String("name"),
				Highschool:       c.String("highschool"),
				GraduationYear:   dto.FlexibleString(c.String("year")),
				ClassName:        c.String("class"),
				DestinationType:  c.String("type"),
				Destination:      c.String("destination"),
				Description:      c.String("description"),
				SecurityQuestion: c.String("question"),
				SecurityAnswer:   c.String("answer"),
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(c.App.Writer, "registered graduate %d\n", id)
			return nil
		},
	}
}

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "search graduates by name and/or highschool",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name"},
			&cli.StringFlag{Name: "highschool"},
		},
		Action: func(c *cli.Context) error {
			api, err := apiClient(c)
			if err != nil {
				return err
			}

			var cipher *fieldcrypt.Cipher
			if key := c.String("key"); key != "" {
				if cipher, err = fieldcrypt.New(key); err != nil {
					return err
				}
			}

			hits, err := api.Search(c.Context, c.String("name"), c.String("highschool"))
			if err != nil {
				return err
			}
			if len(hits) == 0 {
				fmt.Fprintln(c.App.Writer, "no graduates found")
				return nil
			}

			tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tHIGHSCHOOL\tYEAR\tCLASS\tQUESTION")
			for _, h := range hits {
				class := ""
				if h.ClassName != nil {
					class = *h.ClassName
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
					h.ID, h.Name, h.Highschool, h.GraduationYear, class, showQuestion(cipher, h.SecurityQuestion))
			}
			return tw.Flush()
		},
	}
}

// showQuestion decrypts the question when a key is available
func showQuestion(cipher *fieldcrypt.Cipher, question string) string {
	if cipher == nil {
		return "(encrypted)"
	}
	plain, err := cipher.Decrypt(question)
	if err != nil {
		return "(undecryptable)"
	}
	return plain
}

func verifyCommand() *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "answer a graduate's security question to reveal the destination",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "id", Required: true},
			&cli.StringFlag{Name: "answer", Required: true},
		},
		Action: func(c *cli.Context) error {
			api, err := apiClient(c)
			if err != nil {
				return err
			}

			ok, details, err := api.Verify(c.Context, c.Int64("id"), c.String("answer"))
			if err != nil {
				return err
			}
			if !ok || details == nil {
				fmt.Fprintln(c.App.Writer, "incorrect answer")
				return nil
			}

			tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "Name:\t%s\n", details.Name)
			fmt.Fprintf(tw, "Highschool:\t%s\n", details.Highschool)
			fmt.Fprintf(tw, "Year:\t%s\n", details.GraduationYear)
			if details.ClassName != nil {
				fmt.Fprintf(tw, "Class:\t%s\n", *details.ClassName)
			}
			fmt.Fprintf(tw, "Destination:\t%s (%s)\n", details.Destination, details.DestinationType)
			if details.Description != nil {
				fmt.Fprintf(tw, "Description:\t%s\n", *details.Description)
			}
			return tw.Flush()
		},
	}
}
