package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/h2non/filetype"
	cfg "github.com/maheshrc27/approvals-api/configs"
	"github.com/maheshrc27/approvals-api/internal/transfer"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const maxUploadBytes = 100 * 1024 * 1024

type StorageService interface {
	// Upload stores files under folder and returns their bucket-relative
	// paths, in the order given.
	Upload(ctx context.Context, folder string, files []*multipart.FileHeader) ([]transfer.UploadedFile, error)
	// Remove deletes previously uploaded objects. It attempts every path
	// and returns the first failure.
	Remove(ctx context.Context, paths []string) error
}

type objectStore interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type storageService struct {
	client objectStore
	bucket string
}

// NewStorageService talks to the S3-compatible endpoint of the storage
// service at {STORAGE_URL}/storage/v1/s3.
func NewStorageService(ctx context.Context, c cfg.Storage) (StorageService, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, "")),
		config.WithRegion(c.Region),
	)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(strings.TrimRight(c.BaseURL, "/") + "/storage/v1/s3")
		o.UsePathStyle = true
	})
	return newStorageService(client, c.Bucket), nil
}

func newStorageService(client objectStore, bucket string) *storageService {
	return &storageService{client: client, bucket: bucket}
}

func (s *storageService) Upload(ctx context.Context, folder string, files []*multipart.FileHeader) ([]transfer.UploadedFile, error) {
	folder = strings.Trim(folder, "/")
	uploaded := make([]transfer.UploadedFile, 0, len(files))

	for _, fh := range files {
		if fh.Size > maxUploadBytes {
			s.discard(ctx, uploaded)
			return nil, invalid(fmt.Sprintf("%s is larger than 100 MB", fh.Filename))
		}

		data, err := readFile(fh)
		if err != nil {
			slog.Info(err.Error())
			s.discard(ctx, uploaded)
			return nil, fmt.Errorf("read %s: %w", fh.Filename, err)
		}

		kind, err := filetype.Match(data)
		if err != nil || kind == filetype.Unknown {
			s.discard(ctx, uploaded)
			return nil, invalid(fmt.Sprintf("%s is not a recognised file type", fh.Filename))
		}
		if !filetype.IsImage(data) && !filetype.IsVideo(data) {
			s.discard(ctx, uploaded)
			return nil, invalid(fmt.Sprintf("%s is not an image or video", fh.Filename))
		}

		id, err := gonanoid.New()
		if err != nil {
			s.discard(ctx, uploaded)
			return nil, fmt.Errorf("generate object key: %w", err)
		}
		key := path.Join(folder, id+"."+kind.Extension)

		_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(data),
			ContentType: aws.String(kind.MIME.Value),
		})
		if err != nil {
			slog.Info(err.Error())
			s.discard(ctx, uploaded)
			return nil, fmt.Errorf("upload %s: %w", fh.Filename, err)
		}

		uploaded = append(uploaded, transfer.UploadedFile{Path: key})
	}

	return uploaded, nil
}

func (s *storageService) Remove(ctx context.Context, paths []string) error {
	var first error
	for _, p := range paths {
		_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(p),
		})
		if err != nil {
			slog.Info("delete object failed", "key", p, "error", err)
			if first == nil {
				first = fmt.Errorf("delete %s: %w", p, err)
			}
		}
	}
	return first
}

// discard removes the objects of a batch that failed part way through.
func (s *storageService) discard(ctx context.Context, uploaded []transfer.UploadedFile) {
	if len(uploaded) == 0 {
		return
	}
	paths := make([]string, 0, len(uploaded))
	for _, f := range uploaded {
		paths = append(paths, f.Path)
	}
	_ = s.Remove(ctx, paths)
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
