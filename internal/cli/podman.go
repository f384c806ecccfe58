package cli

import (
	"fmt"
	"strings"
)

const (
	podmanBinary = "podman"
	credsFlag    = "--creds"
)

// PodmanClient builds the podman invocations used by the push step.
type PodmanClient struct {
	path   string
	runner *ProcessRunner
}

// ResolvePodman locates podman on PATH. A missing binary is fatal for the run.
func ResolvePodman(runner *ProcessRunner) (*PodmanClient, error) {
	path, err := lookPath(podmanBinary)
	if err != nil {
		return nil, wrapWithSentinelAndContext(ErrPodmanNotFound, err,
			fmt.Sprintf("unable to locate executable file: %s", podmanBinary),
			map[string]any{"executable": podmanBinary})
	}
	return &PodmanClient{path: path, runner: runner}, nil
}

// Path returns the resolved executable path.
func (c *PodmanClient) Path() string {
	return c.path
}

// ListImages runs `podman images --format json`.
func (c *PodmanClient) ListImages() (CommandResult, error) {
	return c.runner.Execute(c.path, listImagesArgs())
}

// PullFromDaemon copies image:tag from the Docker daemon's storage into podman's.
func (c *PodmanClient) PullFromDaemon(image, tag string) (CommandResult, error) {
	return c.runner.Execute(c.path, daemonPullArgs(image, tag))
}

// Push uploads image to destination with inline credentials.
func (c *PodmanClient) Push(username, password, image, destination string) (CommandResult, error) {
	return c.runner.Execute(c.path, pushArgs(username, password, image, destination))
}

func listImagesArgs() []string {
	return []string{"images", "--format", "json"}
}

func daemonPullArgs(image, tag string) []string {
	return []string{"pull", daemonReference(image, tag)}
}

func daemonReference(image, tag string) string {
	return fmt.Sprintf("docker-daemon:%s:%s", image, tag)
}

func pushArgs(username, password, image, destination string) []string {
	return []string{"push", credsFlag, username + ":" + password, image, destination}
}

// registryDestination drops a single trailing slash from registry and appends the tag.
func registryDestination(registry, tag string) string {
	return strings.TrimSuffix(registry, "/") + ":" + tag
}
