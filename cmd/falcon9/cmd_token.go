package main

import (
	"time"

	"github.com/spf13/cobra"

	"falcon9/internal/auth"
)

type tokenFlags struct {
	subject string
	scope   string
	ttl     time.Duration
}

type tokenOutput struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func newTokenCmd(g *globalFlags) *cobra.Command {
	tf := &tokenFlags{}
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the prediction API",
		Long:  "Signs an HS256 token with auth.jwt_secret (env F9_AUTH_JWT_SECRET).",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(g)
			if err != nil {
				return err
			}
			defer e.log.Sync()

			ttl := tf.ttl
			if ttl <= 0 {
				ttl = e.cfg.Auth.TokenTTL
			}
			j := auth.JWT{
				Secret:   []byte(e.cfg.Auth.JWTSecret),
				Issuer:   e.cfg.Auth.Issuer,
				TokenTTL: ttl,
			}
			tok, exp, err := j.Sign(tf.subject, tf.scope)
			if err != nil {
				return err
			}
			out := tokenOutput{Token: tok, ExpiresAt: exp.UTC()}
			return write(cmd.OutOrStdout(), e.format, out, []row{
				{"Token", out.Token},
				{"Expires", out.ExpiresAt.Format(time.RFC3339)},
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&tf.subject, "subject", "", "Token subject (required)")
	f.StringVar(&tf.scope, "scope", "predict", "Token scope")
	f.DurationVar(&tf.ttl, "ttl", 0, "Token lifetime (defaults to auth.token_ttl)")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
