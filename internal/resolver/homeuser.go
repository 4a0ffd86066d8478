package resolver

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/kvistad/tweetkit/internal/envfile"
)

// HomeUser returns the screen name this process is configured to operate
// as, resolving it once and caching it for the process lifetime.
//
// Resolution order: the TWITTER_SCREEN_NAME variable from the process
// environment or the persistent config file, else an interactive prompt
// (terminal sessions only). A prompted answer is recorded in the config file
// so future processes skip the prompt.
func (r *Resolver) HomeUser(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.homeUser != "" {
		return r.homeUser, nil
	}

	if name := strings.TrimSpace(os.Getenv(EnvScreenName)); name != "" {
		r.homeUser = normalizeScreenName(name)
		return r.homeUser, nil
	}

	if envPath, err := r.envFile(); err == nil {
		if vars, err := envfile.Load(envPath); err == nil {
			if name := strings.TrimSpace(vars[EnvScreenName]); name != "" {
				r.homeUser = normalizeScreenName(name)
				return r.homeUser, nil
			}
		}
	}

	name, err := r.prompt(ctx, "Screen name of the account this process operates as")
	if err != nil {
		return "", fmt.Errorf("%s is not set and interactive prompting failed: %w", EnvScreenName, err)
	}
	name = normalizeScreenName(name)
	if name == "" {
		return "", fmt.Errorf("%s is not set and no screen name was entered", EnvScreenName)
	}

	_ = os.Setenv(EnvScreenName, name)
	if envPath, err := r.envFile(); err == nil {
		// Best effort; the in-process cache is authoritative for this run.
		_ = envfile.Set(envPath, EnvScreenName, name)
	}
	r.homeUser = name
	return name, nil
}

// normalizeScreenName strips a leading @ and surrounding whitespace.
func normalizeScreenName(name string) string {
	return strings.TrimPrefix(strings.TrimSpace(name), "@")
}

// terminalPrompt reads one line from stdin, refusing to prompt when stdin is
// not a terminal (non-interactive runs must configure the variable instead).
func terminalPrompt(out io.Writer) PromptFunc {
	return func(ctx context.Context, question string) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return "", fmt.Errorf("stdin is not a terminal")
		}
		fmt.Fprintf(out, "%s: ", question)
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return "", err
		}
		return strings.TrimSpace(line), nil
	}
}
