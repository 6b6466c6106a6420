package cli

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/tabz/internal/client/client"
	"github.com/dmitrijs2005/tabz/internal/client/models"
)

func (a *App) Identity(ctx context.Context, _ []string) error {
	id, err := a.identity.Status(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Identity verification:", id.Status)
	if id.Status != models.IdentityVerified && id.SessionURL != "" {
		fmt.Fprintln(a.out, "Continue at:", id.SessionURL)
	}
	return nil
}

// Verify starts identity verification and prints the hosted session URL.
func (a *App) Verify(ctx context.Context, _ []string) error {
	id, err := a.identity.Start(ctx)
	if err != nil {
		return err
	}
	if id.SessionURL == "" {
		fmt.Fprintln(a.out, "Verification status:", id.Status)
		return nil
	}
	fmt.Fprintln(a.out, "Open this link to verify your identity:")
	fmt.Fprintln(a.out, id.SessionURL)
	return nil
}

func (a *App) Profile(ctx context.Context, _ []string) error {
	p, err := a.profile.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, orDash(p.DisplayName))
	if p.Username != "" {
		fmt.Fprintln(a.out, "@"+p.Username)
	}
	if p.Bio != "" {
		fmt.Fprintln(a.out, p.Bio)
	}
	for _, l := range p.Links {
		fmt.Fprintln(a.out, "  "+l)
	}
	fmt.Fprintln(a.out, "avatar:", orDash(p.AvatarURL))
	fmt.Fprintln(a.out, "cover: ", orDash(p.CoverURL))
	return nil
}

func (a *App) Avatar(ctx context.Context, args []string) error {
	up, err := uploadFromArgs(args)
	if err != nil {
		return err
	}
	if err := a.profile.UploadAvatar(ctx, up); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Avatar updated")
	return nil
}

func (a *App) Cover(ctx context.Context, args []string) error {
	up, err := uploadFromArgs(args)
	if err != nil {
		return err
	}
	if err := a.profile.UploadCover(ctx, up); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Cover updated")
	return nil
}

// uploadFromArgs builds an upload from a file path or file:// URI.
func uploadFromArgs(args []string) (client.Upload, error) {
	if len(args) != 1 {
		return client.Upload{}, errUsage
	}
	uri := args[0]
	return client.Upload{
		URI:         uri,
		ContentType: mime.TypeByExtension(strings.ToLower(filepath.Ext(uri))),
	}, nil
}
