package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"newsdesk/pkg/apiclient"

	"github.com/spf13/cobra"
)

func (c *cli) postsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Read and manage posts",
	}
	cmd.AddCommand(
		c.postsListCmd(),
		c.postsGetCmd(),
		c.postsPopularCmd(),
		c.postsLatestCmd(),
		c.postsRelatedCmd(),
		c.postsSearchCmd(),
		c.postsAuthorCmd(),
		c.postsCreateCmd(),
		c.postsUpdateCmd(),
		c.postsDeleteCmd(),
	)
	return cmd
}

func (c *cli) postsListCmd() *cobra.Command {
	var f apiclient.PostFilters
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := c.client.ListPosts(cmd.Context(), f)
			if err != nil {
				return err
			}
			return c.print(page)
		},
	}
	cmd.Flags().StringVar(&f.Tag, "tag", "", "filter by tag")
	cmd.Flags().StringVar(&f.Type, "type", "", "filter by post type")
	cmd.Flags().StringVar(&f.Category, "category", "", "filter by category")
	cmd.Flags().IntVar(&f.Limit, "limit", 0, "page size")
	cmd.Flags().IntVar(&f.Skip, "skip", 0, "number of posts to skip")
	return cmd
}

func (c *cli) postsGetCmd() *cobra.Command {
	var byID bool
	cmd := &cobra.Command{
		Use:   "get <slug>",
		Short: "Fetch one post by slug (or id with --id)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				post *apiclient.Post
				err  error
			)
			if byID {
				post, err = c.client.GetPostByID(cmd.Context(), args[0])
			} else {
				post, err = c.client.GetPostBySlug(cmd.Context(), args[0])
			}
			if apiclient.IsNotFound(err) {
				return fmt.Errorf("post %q not found", args[0])
			}
			if err != nil {
				return err
			}
			return c.print(post)
		},
	}
	cmd.Flags().BoolVar(&byID, "id", false, "treat the argument as a post id")
	return cmd
}

func (c *cli) postsPopularCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "popular",
		Short: "Most viewed posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			posts, err := c.client.Popular(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return c.print(posts)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "number of posts")
	return cmd
}

func (c *cli) postsLatestCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "latest",
		Short: "Most recent latest-type posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			posts, err := c.client.Latest(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return c.print(posts)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "number of posts")
	return cmd
}

func (c *cli) postsRelatedCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "related <post-id>",
		Short: "Posts sharing tags with the given post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			posts, err := c.client.Related(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			return c.print(posts)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "number of posts")
	return cmd
}

func (c *cli) postsSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <text>",
		Short: "Case-insensitive search over title, excerpt, content and tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			posts, err := c.client.Search(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.print(posts)
		},
	}
}

func (c *cli) postsAuthorCmd() *cobra.Command {
	var (
		exclude string
		limit   int
	)
	cmd := &cobra.Command{
		Use:   "author <author-id>",
		Short: "Posts by one author",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			posts, err := c.client.ByAuthor(cmd.Context(), args[0], exclude, limit)
			if err != nil {
				return err
			}
			return c.print(posts)
		},
	}
	cmd.Flags().StringVar(&exclude, "exclude", "", "post id to leave out")
	cmd.Flags().IntVar(&limit, "limit", 0, "number of posts")
	return cmd
}

func (c *cli) postsCreateCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a post from a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			var post apiclient.Post
			if err := readJSON(file, &post); err != nil {
				return err
			}
			created, err := c.client.CreatePost(cmd.Context(), &post)
			if err != nil {
				return describe(err)
			}
			return c.print(created)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file holding the post (- for stdin)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (c *cli) postsUpdateCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "update <post-id>",
		Short: "Apply a partial JSON update to a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch map[string]interface{}
			if err := readJSON(file, &patch); err != nil {
				return err
			}
			updated, err := c.client.UpdatePost(cmd.Context(), args[0], patch)
			if err != nil {
				return describe(err)
			}
			return c.print(updated)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file holding the changed fields (- for stdin)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (c *cli) postsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <post-id>",
		Short: "Delete a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.client.DeletePost(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "deleted %s\n", args[0])
			return nil
		},
	}
}

func readJSON(path string, v interface{}) error {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	return nil
}

// describe expands validation failures into one line per field.
func describe(err error) error {
	var statusErr *apiclient.StatusError
	if !errors.As(err, &statusErr) || len(statusErr.Fields) == 0 {
		return err
	}
	fields := make([]string, 0, len(statusErr.Fields))
	for field := range statusErr.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msg := statusErr.Message
	for _, field := range fields {
		msg += fmt.Sprintf("\n  %s: %s", field, statusErr.Fields[field])
	}
	return errors.New(msg)
}
