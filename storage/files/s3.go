// Package files implements core.FileStore on S3 and on the local disk.
package files

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"

	"github.com/starville/academy/core"
)

type S3Store struct {
	client *s3.Client
	bucket string
	region string

	// publicBaseURL overrides the default bucket URL, eg. for a CDN in front.
	publicBaseURL string
}

var _ core.FileStore = (*S3Store)(nil) // interface compliance check

func NewS3Store(ctx context.Context, conf *core.Config) (*S3Store, error) {
	awsConf, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(conf.Storage.Region))
	if err != nil {
		return nil, errors.Wrap(err, "loading AWS config")
	}
	return &S3Store{
		client:        s3.NewFromConfig(awsConf),
		bucket:        conf.Storage.Bucket,
		region:        conf.Storage.Region,
		publicBaseURL: strings.TrimSuffix(conf.Storage.PublicBaseURL, "/"),
	}, nil
}

func (st *S3Store) Save(ctx context.Context, key, contentType string, body io.Reader) (core.StoredFile, error) {
	_, err := st.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(st.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return core.StoredFile{}, errors.Wrapf(err, "putting s3 object %s", key)
	}
	return core.StoredFile{Key: key, URL: st.url(key)}, nil
}

func (st *S3Store) Delete(ctx context.Context, key string) error {
	_, err := st.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(st.bucket),
		Key:    aws.String(key),
	})
	return errors.Wrapf(err, "deleting s3 object %s", key)
}

func (st *S3Store) url(key string) string {
	if st.publicBaseURL != "" {
		return st.publicBaseURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", st.bucket, st.region, key)
}
