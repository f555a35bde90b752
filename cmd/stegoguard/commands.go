package main

import (
	"StegoGuard/internal/adapters/identity"
	"StegoGuard/internal/app"
	"StegoGuard/internal/core/domain"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

func runSign(ctx context.Context, a *app.App, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("sign", flag.ContinueOnError)
	fs.SetOutput(stderr)
	in := fs.String("in", "", "path to the input image")
	out := fs.String("out", "", "path to write the signed image")
	email := fs.String("email", "", "email of the uploading user")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *in == "" || *out == "" || strings.TrimSpace(*email) == "" {
		fmt.Fprintln(stderr, "--in, --out and --email must be provided")
		return 2
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		fmt.Fprintf(stderr, "read %s: %v\n", *in, err)
		return 1
	}

	stored, err := a.Images.Upload(identity.WithEmail(ctx, *email), domain.ImageUpload{
		Name:        filepath.Base(*in),
		ContentType: http.DetectContentType(data),
		Data:        data,
	})
	switch {
	case errors.Is(err, domain.ErrImageRejected):
		fmt.Fprintf(stderr, "rejected: %v\n", err)
		return 1
	case errors.Is(err, domain.ErrAuthentication):
		fmt.Fprintf(stderr, "no user found for %s\n", *email)
		return 1
	case err != nil:
		fmt.Fprintf(stderr, "sign: %v\n", err)
		return 1
	}

	signed, err := a.Images.Download(stored)
	if err != nil {
		fmt.Fprintf(stderr, "restore: %v\n", err)
		return 1
	}
	if err := os.WriteFile(*out, signed, 0o644); err != nil {
		fmt.Fprintf(stderr, "write %s: %v\n", *out, err)
		return 1
	}

	fmt.Fprintf(stdout, "image %s signed=%t stored=%d bytes\n", stored.ID, stored.Signed, len(stored.Data))
	return 0
}

func runEmbed(a *app.App, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("embed", flag.ContinueOnError)
	fs.SetOutput(stderr)
	in := fs.String("in", "", "path to the input image")
	out := fs.String("out", "", "path to write the signed image")
	id := fs.String("id", "", "identifier field (positive integer or UUID)")
	secondary := fs.String("secondary", "", "secondary field (email or timestamp)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *in == "" || *out == "" {
		fmt.Fprintln(stderr, "--in and --out must be provided")
		return 2
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		fmt.Fprintf(stderr, "read %s: %v\n", *in, err)
		return 1
	}
	signed, err := a.Stego.Sign(data, *id, *secondary)
	if err != nil {
		fmt.Fprintf(stderr, "embed: %v\n", err)
		return 1
	}
	if err := os.WriteFile(*out, signed, 0o644); err != nil {
		fmt.Fprintf(stderr, "write %s: %v\n", *out, err)
		return 1
	}
	fmt.Fprintf(stdout, "wrote %s\n", *out)
	return 0
}

func runInspect(a *app.App, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(stderr)
	in := fs.String("in", "", "path to the image")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *in == "" {
		fmt.Fprintln(stderr, "--in must be provided")
		return 2
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		fmt.Fprintf(stderr, "read %s: %v\n", *in, err)
		return 1
	}
	payload, ok := a.Images.Verify(data)
	if !ok {
		fmt.Fprintln(stdout, "no signature found")
		return 3
	}
	fmt.Fprintf(stdout, "identifier=%s secondary=%s\n", payload.Identifier, payload.Secondary)
	return 0
}
