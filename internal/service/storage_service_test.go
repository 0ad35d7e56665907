package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

type recordingStore struct {
	inputs  []*s3.PutObjectInput
	bodies  [][]byte
	deleted []string
	failOn  map[string]error
}

func (r *recordingStore) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, _ := io.ReadAll(in.Body)
	r.inputs = append(r.inputs, in)
	r.bodies = append(r.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

func (r *recordingStore) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	key := *in.Key
	if err := r.failOn[key]; err != nil {
		return nil, err
	}
	r.deleted = append(r.deleted, key)
	return &s3.DeleteObjectOutput{}, nil
}

func formFiles(t *testing.T, files map[string][]byte, order ...string) []*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, name := range order {
		part, err := w.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write(files[name])
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["files"]
}

func TestStorageUpload(t *testing.T) {
	putter := &recordingStore{}
	svc := newStorageService(putter, "midias")

	files := formFiles(t, map[string][]byte{"capa.png": pngHeader}, "capa.png")
	uploaded, err := svc.Upload(context.Background(), "/publicacoes/p-1/", files)
	require.NoError(t, err)

	require.Len(t, uploaded, 1)
	path := uploaded[0].Path
	assert.True(t, strings.HasPrefix(path, "publicacoes/p-1/"), path)
	assert.True(t, strings.HasSuffix(path, ".png"), path)
	assert.NotContains(t, path, "://")

	require.Len(t, putter.inputs, 1)
	assert.Equal(t, "midias", *putter.inputs[0].Bucket)
	assert.Equal(t, path, *putter.inputs[0].Key)
	assert.Equal(t, "image/png", *putter.inputs[0].ContentType)
	assert.Equal(t, pngHeader, putter.bodies[0])
}

func TestStorageUpload_RejectsUnknownType(t *testing.T) {
	putter := &recordingStore{}
	svc := newStorageService(putter, "midias")

	files := formFiles(t, map[string][]byte{"notas.txt": []byte("texto simples")}, "notas.txt")
	_, err := svc.Upload(context.Background(), "publicacoes/p-1", files)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, putter.inputs)
}

func TestStorageUpload_DiscardsPartialBatch(t *testing.T) {
	putter := &recordingStore{}
	svc := newStorageService(putter, "midias")

	files := formFiles(t, map[string][]byte{
		"capa.png":  pngHeader,
		"notas.txt": []byte("texto simples"),
	}, "capa.png", "notas.txt")
	_, err := svc.Upload(context.Background(), "publicacoes/p-1", files)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, putter.inputs, 1)
	assert.Equal(t, []string{*putter.inputs[0].Key}, putter.deleted)
}

func TestStorageRemove(t *testing.T) {
	putter := &recordingStore{failOn: map[string]error{"publicacoes/p-1/b.png": errors.New("denied")}}
	svc := newStorageService(putter, "midias")

	err := svc.Remove(context.Background(), []string{"publicacoes/p-1/a.png", "publicacoes/p-1/b.png", "publicacoes/p-1/c.png"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publicacoes/p-1/b.png")
	assert.Equal(t, []string{"publicacoes/p-1/a.png", "publicacoes/p-1/c.png"}, putter.deleted)

	assert.NoError(t, svc.Remove(context.Background(), nil))
}
