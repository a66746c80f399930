package secrets

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSSM struct {
	mu        sync.Mutex
	values    map[string]string
	decrypted map[string]bool
	err       error
}

func (f *fakeSSM) GetParameter(ctx context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	name := aws.ToString(in.Name)
	f.decrypted[name] = aws.ToBool(in.WithDecryption)
	return &ssm.GetParameterOutput{
		Parameter: &types.Parameter{Name: in.Name, Value: aws.String(f.values[name])},
	}, nil
}

func newFake() *fakeSSM {
	return &fakeSSM{
		values: map[string]string{
			"DB_USERNAME": "todo",
			"DB_PASSWORD": "s3cret",
			"DB_HOST":     "todo.rds.amazonaws.com",
		},
		decrypted: map[string]bool{},
	}
}

func TestFetchDBParameters(t *testing.T) {
	fake := newFake()

	env, err := FetchDBParameters(context.Background(), fake)
	require.NoError(t, err)
	assert.Equal(t, fake.values, env)
	assert.True(t, fake.decrypted["DB_HOST"])
	assert.False(t, fake.decrypted["DB_PASSWORD"])
}

func TestFetchDBParametersError(t *testing.T) {
	fake := newFake()
	fake.err = errors.New("AccessDeniedException")

	_, err := FetchDBParameters(context.Background(), fake)
	assert.ErrorContains(t, err, "AccessDeniedException")
}

func TestWriteDBEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".db.env")

	require.NoError(t, WriteDBEnv(context.Background(), newFake(), path))

	written, err := godotenv.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "todo.rds.amazonaws.com", written["DB_HOST"])
	assert.Equal(t, "s3cret", written["DB_PASSWORD"])
}
