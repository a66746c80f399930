// Package secrets pulls database credentials from AWS Systems Manager
// Parameter Store and writes them to a dotenv file for local runs.
package secrets

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

// ParameterGetter is the part of *ssm.Client used here.
type ParameterGetter interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

type parameter struct {
	name    string
	decrypt bool
}

var dbParameters = []parameter{
	{name: "DB_USERNAME"},
	{name: "DB_PASSWORD"},
	{name: "DB_HOST", decrypt: true},
}

// FetchDBParameters reads the database parameters concurrently and returns
// them keyed by env var name.
func FetchDBParameters(ctx context.Context, client ParameterGetter) (map[string]string, error) {
	values := make([]string, len(dbParameters))

	g, ctx := errgroup.WithContext(ctx)
	for i, p := range dbParameters {
		g.Go(func() error {
			out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
				Name:           aws.String(p.name),
				WithDecryption: aws.Bool(p.decrypt),
			})
			if err != nil {
				return fmt.Errorf("get parameter %s: %w", p.name, err)
			}
			if out.Parameter == nil || out.Parameter.Value == nil {
				return fmt.Errorf("parameter %s has no value", p.name)
			}
			values[i] = aws.ToString(out.Parameter.Value)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	env := make(map[string]string, len(dbParameters))
	for i, p := range dbParameters {
		env[p.name] = values[i]
	}
	return env, nil
}

// WriteDBEnv fetches the parameters and writes them to path.
func WriteDBEnv(ctx context.Context, client ParameterGetter, path string) error {
	env, err := FetchDBParameters(ctx, client)
	if err != nil {
		return err
	}
	if err := godotenv.Write(env, path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
