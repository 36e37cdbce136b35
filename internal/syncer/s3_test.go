package syncer

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daybook/internal/config"
)

type fakeS3 struct {
	headErr error
	putErr  error
	copyErr error

	putKeys    []string
	copyKeys   []string
	copySrc    []string
	deleteKeys []string
	putBodies  []string
}

func (f *fakeS3) HeadObject(_ context.Context, _ *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if f.headErr != nil {
		return nil, f.headErr
	}
	return &s3.HeadObjectOutput{}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.putKeys = append(f.putKeys, *in.Key)
	f.putBodies = append(f.putBodies, string(body))
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) CopyObject(_ context.Context, in *s3.CopyObjectInput, _ ...func(*s3.Options)) (*s3.CopyObjectOutput, error) {
	if f.copyErr != nil {
		return nil, f.copyErr
	}
	f.copyKeys = append(f.copyKeys, *in.Key)
	f.copySrc = append(f.copySrc, *in.CopySource)
	return &s3.CopyObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleteKeys = append(f.deleteKeys, *in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func newTestS3(cfg config.S3Backend, client *fakeS3) *S3 {
	b := NewS3(cfg)
	b.newClient = func(context.Context) (s3Client, error) { return client, nil }
	return b
}

func TestS3TransferStagesThenCommits(t *testing.T) {
	archive := writeArchive(t, "object bytes")
	fake := &fakeS3{}
	b := newTestS3(config.S3Backend{Enabled: true, Bucket: "vault", Prefix: "backups"}, fake)

	res, err := b.Transfer(context.Background(), archive)
	require.NoError(t, err)

	assert.Equal(t, []string{"backups/daybook-backup.zip.part"}, fake.putKeys)
	assert.Equal(t, []string{"object bytes"}, fake.putBodies)
	assert.Equal(t, []string{"backups/daybook-backup.zip"}, fake.copyKeys)
	assert.Equal(t, []string{"vault%2Fbackups%2Fdaybook-backup.zip.part"}, fake.copySrc)
	assert.Equal(t, []string{"backups/daybook-backup.zip.part"}, fake.deleteKeys)
	assert.Equal(t, "s3://vault/backups/daybook-backup.zip", res.Destination)
	assert.Equal(t, int64(len("object bytes")), res.Size)
}

func TestS3TransferUploadFailureLeavesNoFinalObject(t *testing.T) {
	archive := writeArchive(t, "x")
	fake := &fakeS3{putErr: errors.New("connection reset")}
	b := newTestS3(config.S3Backend{Enabled: true, Bucket: "vault"}, fake)

	_, err := b.Transfer(context.Background(), archive)
	require.Error(t, err)
	assert.Empty(t, fake.copyKeys, "failed upload must never reach the final key")
}

func TestS3TransferCommitFailure(t *testing.T) {
	archive := writeArchive(t, "x")
	fake := &fakeS3{copyErr: errors.New("slow down")}
	b := newTestS3(config.S3Backend{Enabled: true, Bucket: "vault"}, fake)

	_, err := b.Transfer(context.Background(), archive)
	require.Error(t, err)
}

func TestS3TransferRequiresBucket(t *testing.T) {
	b := newTestS3(config.S3Backend{Enabled: true}, &fakeS3{})
	_, err := b.Transfer(context.Background(), writeArchive(t, "x"))
	assert.Error(t, err)
}

func TestS3Preview(t *testing.T) {
	archive := writeArchive(t, "payload")

	t.Run("object exists", func(t *testing.T) {
		b := newTestS3(config.S3Backend{Enabled: true, Bucket: "vault"}, &fakeS3{})
		p, err := b.Preview(context.Background(), archive)
		require.NoError(t, err)
		assert.True(t, p.WouldOverwrite)
		assert.Equal(t, "s3://vault/daybook-backup.zip", p.Destination)
	})

	t.Run("object missing", func(t *testing.T) {
		b := newTestS3(config.S3Backend{Enabled: true, Bucket: "vault"}, &fakeS3{headErr: errors.New("404")})
		p, err := b.Preview(context.Background(), archive)
		require.NoError(t, err)
		assert.False(t, p.WouldOverwrite)
	})
}
