package blob

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/bytedance/sonic"
	"github.com/timeasy-io/timeasy/internal/config"
)

// S3 holds the clients used to write export documents and hand out links to them.
type S3 struct {
	Client    *s3.Client
	Uploader  *manager.Uploader
	Presigner *s3.PresignClient
	Bucket    string
	SSE       *s3types.ServerSideEncryption
}

type UploadedMeta struct {
	Bucket string
	Key    string
	ETag   string
	SHA256 string
	SizeB  int64
}

func NewS3(ctx context.Context, cfg config.S3Cfg) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket is empty")
	}
	loadOpts := []func(*awsCfg.LoadOptions) error{
		awsCfg.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		loadOpts = append(loadOpts, awsCfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	acfg, err := awsCfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(acfg, func(o *s3.Options) {
		if ep := endpointURL(cfg.Endpoint); ep != "" {
			o.BaseEndpoint = aws.String(ep)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	var sse *s3types.ServerSideEncryption
	if cfg.SSE != "" {
		v := s3types.ServerSideEncryption(cfg.SSE)
		sse = &v
	}

	return &S3{
		Client:    client,
		Uploader:  manager.NewUploader(client),
		Presigner: s3.NewPresignClient(client),
		Bucket:    cfg.Bucket,
		SSE:       sse,
	}, nil
}

// endpointURL accepts "host:port" as well as a full URL.
func endpointURL(ep string) string {
	ep = strings.TrimSpace(ep)
	if ep == "" {
		return ""
	}
	if !strings.HasPrefix(ep, "http://") && !strings.HasPrefix(ep, "https://") {
		ep = "https://" + ep
	}
	u, err := url.Parse(ep)
	if err != nil {
		return ""
	}
	return u.String()
}

// PresignGet returns a time limited download link for key.
func (s *S3) PresignGet(ctx context.Context, key string, expire time.Duration) (string, error) {
	if key == "" {
		return "", errors.New("key is empty")
	}
	ps, err := s.Presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.Bucket,
		Key:    &key,
	}, func(po *s3.PresignOptions) {
		po.Expires = expire
	})
	if err != nil {
		return "", err
	}
	return ps.URL, nil
}

// UploadJSON writes data below keyPrefix/<yyyy/mm/dd>/<sha256>.json.
func (s *S3) UploadJSON(ctx context.Context, keyPrefix string, data interface{}) (*UploadedMeta, error) {
	body, err := sonic.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	key, sumHex := ObjectKey(keyPrefix, time.Now(), body)

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
		Metadata:    map[string]string{"sha256": sumHex},
	}
	if s.SSE != nil {
		input.ServerSideEncryption = *s.SSE
	}

	out, err := s.Uploader.Upload(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", key, err)
	}

	return &UploadedMeta{
		Bucket: s.Bucket,
		Key:    key,
		ETag:   aws.ToString(out.ETag),
		SHA256: sumHex,
		SizeB:  int64(len(body)),
	}, nil
}

// ObjectKey derives the content addressed key of body.
func ObjectKey(keyPrefix string, at time.Time, body []byte) (key, sumHex string) {
	sum := sha256.Sum256(body)
	sumHex = hex.EncodeToString(sum[:])
	key = fmt.Sprintf("%s/%s/%s.json", strings.TrimSuffix(keyPrefix, "/"), at.UTC().Format("2006/01/02"), sumHex)
	return key, sumHex
}
