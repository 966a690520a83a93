package plugins

import (
	"context"
	"fmt"
	"time"

	"github.com/chorehq/chore/internal/core/ports"
	"github.com/jonboulle/clockwork"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const awsKey = "aws"

// awsSession is the cached credential set for one profile.
type awsSession struct {
	AccessKeyID     string    `yaml:"access_key_id"`
	SecretAccessKey string    `yaml:"secret_access_key"`
	SessionToken    string    `yaml:"session_token"`
	Expires         time.Time `yaml:"expires"`
}

// stsResponse mirrors the get-session-token JSON shape. The aws CLI emits
// JSON, which the YAML decoder reads natively.
type stsResponse struct {
	Credentials struct {
		AccessKeyID     string    `yaml:"AccessKeyId"`
		SecretAccessKey string    `yaml:"SecretAccessKey"`
		SessionToken    string    `yaml:"SessionToken"`
		Expiration      time.Time `yaml:"Expiration"`
	} `yaml:"Credentials"`
}

// AWS contributes MFA session credentials, cached across invocations until
// they expire.
type AWS struct {
	shell   ports.Shell
	console ports.Console
	cache   ports.SessionCache
	logger  ports.Logger
	clock   clockwork.Clock
}

// NewAWS creates the aws plugin.
func NewAWS(shell ports.Shell, console ports.Console, cache ports.SessionCache, logger ports.Logger, clock clockwork.Clock) *AWS {
	return &AWS{shell: shell, console: console, cache: cache, logger: logger, clock: clock}
}

func (a *AWS) Key() string  { return awsKey }
func (a *AWS) Help() string { return "obtain MFA session credentials for an aws profile" }

// Load returns cached credentials when they are still valid; otherwise it
// prompts for an MFA code and requests a fresh session token.
func (a *AWS) Load(ctx context.Context, req ports.PluginRequest) (map[string]string, error) {
	profile := stringOption(req.Options, "profile", "default")

	var sess awsSession
	found, err := a.cache.Read(req.Tmp, a.entry(profile), &sess)
	if err != nil {
		return nil, err
	}
	if !found || !sess.Expires.After(a.clock.Now()) {
		if sess, err = a.newSession(ctx, req, profile); err != nil {
			return nil, err
		}
		if err := a.cache.Write(req.Tmp, a.entry(profile), sess); err != nil {
			return nil, err
		}
	}

	vars := map[string]string{
		"AWS_PROFILE":           profile,
		"AWS_ACCESS_KEY_ID":     sess.AccessKeyID,
		"AWS_SECRET_ACCESS_KEY": sess.SecretAccessKey,
		"AWS_SESSION_TOKEN":     sess.SessionToken,
	}
	if region := stringOption(req.Options, "region", ""); region != "" {
		vars["AWS_DEFAULT_REGION"] = region
	}
	return vars, nil
}

// Unload drops the cached session so the next load starts clean.
func (a *AWS) Unload(_ context.Context, req ports.PluginRequest) error {
	profile := stringOption(req.Options, "profile", "default")
	return a.cache.Remove(req.Tmp, a.entry(profile))
}

func (a *AWS) newSession(ctx context.Context, req ports.PluginRequest, profile string) (awsSession, error) {
	mfa := mapOption(req.Options, "mfa")
	device := stringOption(mfa, "device", "")
	if device == "" {
		return awsSession{}, zerr.New("aws plugin requires mfa.device")
	}
	expiry := stringOption(mfa, "expiry", "86400")

	code, err := a.console.Ask(fmt.Sprintf("MFA code for %s:", device))
	if err != nil {
		return awsSession{}, zerr.Wrap(err, "failed to read MFA code")
	}

	line := fmt.Sprintf(
		"aws sts get-session-token --profile %s --serial-number %s --token-code %s --duration-seconds %s --output json",
		profile, device, code, expiry,
	)
	res, err := a.shell.Run(ctx, ports.ShellCommand{
		Line:    line,
		Dir:     req.Home,
		Env:     environ(req.Env),
		Capture: true,
	})
	if err != nil {
		return awsSession{}, zerr.Wrap(err, "failed to spawn aws cli")
	}
	if res.ExitCode != 0 {
		return awsSession{}, zerr.With(zerr.New("aws sts get-session-token failed"), "output", res.Stdout)
	}

	var parsed stsResponse
	if err := yaml.Unmarshal([]byte(res.Stdout), &parsed); err != nil {
		return awsSession{}, zerr.Wrap(err, "failed to decode sts response")
	}

	creds := parsed.Credentials
	if creds.AccessKeyID == "" {
		return awsSession{}, zerr.New("sts response carried no credentials")
	}
	return awsSession{
		AccessKeyID:     creds.AccessKeyID,
		SecretAccessKey: creds.SecretAccessKey,
		SessionToken:    creds.SessionToken,
		Expires:         creds.Expiration,
	}, nil
}

func (a *AWS) entry(profile string) string {
	return "aws-session-" + profile
}
