// Package docker executes variant benchmark scripts in containers.
//
// Callers describe a run as a structured Spec (image, in-container script,
// bind mounts); the actual invocation is assembled here through the Docker
// SDK, never by interpolating a host shell command line.
package docker

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/moby/moby/api/pkg/stdcopy"
	"github.com/moby/moby/api/types/container"
	"github.com/moby/moby/api/types/mount"
	"github.com/moby/moby/client"
)

type Spec struct {
	Image   string
	Script  string
	Mounts  []Mount
	Timeout time.Duration
}

type Mount struct {
	Source   string
	Target   string
	ReadOnly bool
}

type Result struct {
	Output   string
	ExitCode int
	TimedOut bool
	Duration time.Duration
}

// Engine runs Specs against the local Docker daemon.
type Engine struct{}

func (Engine) Run(ctx context.Context, spec *Spec) (*Result, error) {
	return RunContainer(ctx, spec)
}

// RunContainer creates, runs, and removes a container for the spec, waiting
// for completion (or spec.Timeout) and capturing combined stdout/stderr.
// A non-zero exit is not an error: callers get the code and the output.
func RunContainer(ctx context.Context, spec *Spec) (*Result, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("creating docker client: %w", err)
	}
	defer cli.Close()

	mounts := make([]mount.Mount, 0, len(spec.Mounts))
	for _, m := range spec.Mounts {
		mounts = append(mounts, mount.Mount{
			Type:     mount.TypeBind,
			Source:   m.Source,
			Target:   m.Target,
			ReadOnly: m.ReadOnly,
		})
	}

	initTrue := true
	hostCfg := &container.HostConfig{
		Mounts: mounts,
		Init:   &initTrue,
	}
	containerCfg := &container.Config{
		Image:  spec.Image,
		Cmd:    []string{"/bin/bash", "-lc", spec.Script},
		Labels: map[string]string{"perfbench": "true"},
	}

	createResp, err := cli.ContainerCreate(ctx, client.ContainerCreateOptions{
		Config:     containerCfg,
		HostConfig: hostCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("creating container: %w", err)
	}
	containerID := createResp.ID
	defer func() {
		cli.ContainerRemove(context.Background(), containerID, client.ContainerRemoveOptions{Force: true})
	}()

	start := time.Now()
	if _, err := cli.ContainerStart(ctx, containerID, client.ContainerStartOptions{}); err != nil {
		return nil, fmt.Errorf("starting container: %w", err)
	}

	waitCtx := ctx
	if spec.Timeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, spec.Timeout)
		defer cancel()
	}

	waitResult := cli.ContainerWait(waitCtx, containerID, client.ContainerWaitOptions{
		Condition: container.WaitConditionNotRunning,
	})
	for {
		select {
		case err := <-waitResult.Error:
			if err != nil {
				cli.ContainerKill(context.Background(), containerID, client.ContainerKillOptions{Signal: "SIGKILL"})
				return &Result{
					Output:   collectLogs(cli, containerID),
					ExitCode: 124,
					TimedOut: true,
					Duration: time.Since(start),
				}, nil
			}
			// nil error means no error on this channel; wait for result
		case status := <-waitResult.Result:
			return &Result{
				Output:   collectLogs(cli, containerID),
				ExitCode: int(status.StatusCode),
				TimedOut: false,
				Duration: time.Since(start),
			}, nil
		}
	}
}

// collectLogs returns the container's combined stdout and stderr as one
// text blob. Best-effort: metric extraction downstream treats missing
// output the same as unparseable output.
func collectLogs(cli *client.Client, containerID string) string {
	logReader, err := cli.ContainerLogs(context.Background(), containerID, client.ContainerLogsOptions{
		ShowStdout: true,
		ShowStderr: true,
	})
	if err != nil || logReader == nil {
		return ""
	}
	defer logReader.Close()
	return demuxLogs(logReader)
}

// demuxLogs folds a multiplexed stdout/stderr log stream into one text
// blob. Containers here run without a TTY, so the daemon frames the
// stream with 8-byte headers that must not leak into the output.
func demuxLogs(r io.Reader) string {
	var buf bytes.Buffer
	// A truncated stream still yields the frames decoded so far.
	stdcopy.StdCopy(&buf, &buf, r)
	return buf.String()
}
