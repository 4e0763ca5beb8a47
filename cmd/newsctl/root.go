package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"newsdesk/pkg/apiclient"
	"newsdesk/pkg/config"

	"github.com/spf13/cobra"
)

type cli struct {
	cfg    *config.Config
	client *apiclient.Client
	out    io.Writer

	baseURL string
	token   string
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out}

	root := &cobra.Command{
		Use:          "newsctl",
		Short:        "Command line client for the newsdesk API",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
	}
	root.PersistentFlags().StringVar(&c.baseURL, "api", "", "API base URL (defaults to API_BASE_URL)")
	root.PersistentFlags().StringVar(&c.token, "token", os.Getenv("NEWSDESK_TOKEN"), "bearer token (defaults to NEWSDESK_TOKEN)")

	root.AddCommand(
		c.loginCmd(),
		c.postsCmd(),
		c.tagsCmd(),
		c.categoriesCmd(),
		c.eventsCmd(),
	)
	return root
}

func (c *cli) setup() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	c.cfg = cfg

	baseURL := c.baseURL
	if baseURL == "" {
		baseURL = cfg.APIBaseURL
	}

	session := apiclient.NewSession()
	if c.token != "" {
		session.Login(c.token, nil)
	}

	c.client = apiclient.New(baseURL, session,
		apiclient.WithTimeout(cfg.APITimeout),
		apiclient.WithRedirect(cfg.LoginURL, func(loginURL string) {
			fmt.Fprintf(os.Stderr, "session expired, log in again (%s)\n", loginURL)
		}),
	)
	return nil
}

func (c *cli) print(v interface{}) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *cli) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print the bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := c.client.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, resp.Token)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "author email")
	cmd.Flags().StringVar(&password, "password", "", "author password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (c *cli) tagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List tags used by published posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			tags, err := c.client.Tags(cmd.Context())
			if err != nil {
				return err
			}
			return c.print(tags)
		},
	}
}

func (c *cli) categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories used by published posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := c.client.Categories(cmd.Context())
			if err != nil {
				return err
			}
			return c.print(categories)
		},
	}
}
