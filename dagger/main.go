// Package main provides a Dagger module for testing, building and publishing casebot.
package main

import (
	"context"
	"dagger/casebot/internal/dagger"
	"fmt"
	"strings"
)

const goImage = "golang:1.24.2-alpine"

// binaries are the commands shipped in the container image.
var binaries = []string{"bot", "db", "export"} //nolint:gochecknoglobals // -

type Casebot struct{}

// goContainer returns a Go toolchain container with module and build caches mounted.
func goContainer(src *dagger.Directory) *dagger.Container {
	return dag.Container().
		From(goImage).
		WithMountedCache("/go/pkg/mod", dag.CacheVolume("go-mod")).
		WithMountedCache("/root/.cache/go-build", dag.CacheVolume("go-build")).
		WithDirectory("/src", src).
		WithWorkdir("/src").
		WithEnvVariable("CGO_ENABLED", "0")
}

// Test runs the unit test suite.
func (m *Casebot) Test(
	ctx context.Context,
	// Source code directory
	// +required
	src *dagger.Directory,
) (string, error) {
	return goContainer(src).
		WithExec([]string{"go", "vet", "./..."}).
		WithExec([]string{"go", "test", "./..."}).
		Stdout(ctx)
}

// BuildContainer creates a container image for the project.
func (m *Casebot) BuildContainer(
	ctx context.Context,
	// Source code directory
	// +required
	src *dagger.Directory,
	// Platform to build for
	// +optional
	// +default="linux/amd64"
	platform *dagger.Platform,
) (*dagger.Container, error) {
	// Use default platform if none specified
	buildPlatform := dagger.Platform("linux/amd64")
	if platform != nil {
		buildPlatform = *platform
	}

	// Get architecture using containerd utility
	platformArch, err := dag.Containerd().ArchitectureOf(ctx, buildPlatform)
	if err != nil {
		return nil, fmt.Errorf("failed to get architecture: %w", err)
	}

	buildCtr := goContainer(src).
		WithEnvVariable("GOOS", "linux").
		WithEnvVariable("GOARCH", platformArch).
		WithExec([]string{"apk", "add", "--no-cache", "ca-certificates"}).
		WithExec([]string{"mkdir", "-p", "/src/bin", "/src/logs"})

	for _, binary := range binaries {
		buildCtr = buildCtr.WithExec([]string{
			"go", "build",
			"-ldflags=-s -w",
			"-o", "/src/bin/" + binary,
			"./cmd/" + binary,
		})
	}

	// Config files are mounted at /app/config at runtime
	return dag.Container(dagger.ContainerOpts{Platform: buildPlatform}).
		From("gcr.io/distroless/static-debian12:latest").
		WithDirectory("/app/bin", buildCtr.Directory("/src/bin")).
		WithDirectory("/app/logs", buildCtr.Directory("/src/logs")).
		WithFile("/etc/ssl/certs/ca-certificates.crt", buildCtr.File("/etc/ssl/certs/ca-certificates.crt")).
		WithWorkdir("/app").
		WithEntrypoint([]string{"/app/bin/bot", "--auto-migrate"}), nil
}

// Publish the application container after testing and building it.
func (m *Casebot) Publish(
	ctx context.Context,
	// Source code directory
	// +required
	src *dagger.Directory,
	// Docker image name (e.g. "username/repo:tag")
	// +required
	imageName string,
	// Platforms to build for (comma-separated, e.g. "linux/amd64,linux/arm64")
	// +optional
	// +default="linux/amd64"
	platforms string,
) (string, error) {
	if _, err := m.Test(ctx, src); err != nil {
		return "", fmt.Errorf("tests failed: %w", err)
	}

	// Parse platforms string
	platformList := []dagger.Platform{"linux/amd64"}
	if platforms != "" {
		platformList = platformList[:0]
		for _, p := range strings.Split(platforms, ",") {
			platformList = append(platformList, dagger.Platform(strings.TrimSpace(p)))
		}
	}

	// Build containers for each platform
	platformVariants := make([]*dagger.Container, 0, len(platformList))
	for _, platform := range platformList {
		container, err := m.BuildContainer(ctx, src, &platform)
		if err != nil {
			return "", fmt.Errorf("failed to build container for %s: %w", platform, err)
		}
		platformVariants = append(platformVariants, container)
	}

	// Publish multi-arch image
	ref, err := dag.Container().Publish(ctx, imageName, dagger.ContainerPublishOpts{
		PlatformVariants: platformVariants,
	})
	if err != nil {
		return "", fmt.Errorf("failed to publish image: %w", err)
	}

	return ref, nil
}

// Run builds and runs one of the commands with the given config directory.
func (m *Casebot) Run(
	// Source code directory
	// +required
	src *dagger.Directory,
	// Config directory containing common.toml and bot.toml
	// +required
	configDir *dagger.Directory,
	// Command to run: "bot", "db" or "export"
	// +required
	cmd string,
	// Extra arguments passed to the command
	// +optional
	args []string,
) *dagger.Container {
	return goContainer(src).
		WithDirectory("/etc/casebot/config", configDir).
		WithExec([]string{"go", "build", "-o", "/src/bin/casebot", "./cmd/" + cmd}).
		WithExec(append([]string{"/src/bin/casebot"}, args...))
}
