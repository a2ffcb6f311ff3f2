package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	blog "github.com/goliatone/go-blog"
	"github.com/goliatone/go-blog/cmd/internal/bootstrap"
)

var moduleBuilder = bootstrap.BuildModule

var errAuditFailed = errors.New("audit found invalid documents")

const usage = `usage: posts [flags] <command> [argument]

commands:
  list               all published posts
  show <slug>        a single post with its body
  category <name>    posts of a category
  tag <name>         posts carrying a tag
  categories         distinct categories
  tags               distinct tags
  render <slug>      the post body rendered as HTML
  check              audit local and remote documents against the post schema
`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("posts: %v", err)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("posts", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	opts := bootstrap.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("command is required")
	}

	command := fs.Arg(0)
	argument := strings.TrimSpace(fs.Arg(1))
	if needsArgument(command) && argument == "" {
		return fmt.Errorf("%s requires an argument", command)
	}

	module, err := moduleBuilder(*opts)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	ctx := context.Background()
	service := module.Posts()

	switch command {
	case "list":
		return bootstrap.WriteJSON(stdout, service.GetAllPosts(ctx))
	case "show":
		post, ok := service.GetPostBySlug(ctx, argument)
		if !ok {
			return fmt.Errorf("post %q not found", argument)
		}
		return bootstrap.WriteJSON(stdout, post)
	case "category":
		return bootstrap.WriteJSON(stdout, service.GetPostsByCategory(ctx, argument))
	case "tag":
		return bootstrap.WriteJSON(stdout, service.GetPostsByTag(ctx, argument))
	case "categories":
		return bootstrap.WriteJSON(stdout, service.GetAllCategories(ctx))
	case "tags":
		return bootstrap.WriteJSON(stdout, service.GetAllTags(ctx))
	case "render":
		return render(ctx, module, argument, stdout)
	case "check":
		return check(ctx, module, stdout)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func needsArgument(command string) bool {
	switch command {
	case "show", "category", "tag", "render":
		return true
	}
	return false
}

func render(ctx context.Context, module *blog.Module, slug string, stdout io.Writer) error {
	post, ok := module.Posts().GetPostBySlug(ctx, slug)
	if !ok {
		return fmt.Errorf("post %q not found", slug)
	}
	html, err := module.Renderer().RenderPost(ctx, post)
	if err != nil {
		return err
	}
	_, err = stdout.Write(html)
	return err
}

func check(ctx context.Context, module *blog.Module, stdout io.Writer) error {
	report, err := module.Audit(ctx)
	if err != nil {
		return err
	}
	if err := bootstrap.WriteJSON(stdout, report); err != nil {
		return err
	}
	if !report.Valid() {
		return errAuditFailed
	}
	return nil
}
