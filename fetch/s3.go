package fetch

import (
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/pkg/errors"
)

// S3Client is the subset of the S3 API the fetcher needs, so tests can
// substitute a mock.
type S3Client interface {
	GetObject(input *s3.GetObjectInput) (*s3.GetObjectOutput, error)
}

// S3Fetcher downloads s3://bucket/key locators.
type S3Fetcher struct {
	// Client to use. When nil, a client is created from the default AWS
	// session on first use.
	Client S3Client
}

// ParseS3Url splits an s3://bucket/key locator into bucket and key.
func ParseS3Url(rawUrl string) (bucket string, key string, err error) {
	parsed, parseErr := url.Parse(rawUrl)
	if parseErr != nil {
		return "", "", parseErr
	}
	if parsed.Scheme != "s3" || parsed.Host == "" {
		return "", "", errors.Errorf("not an s3 locator: %s", rawUrl)
	}
	return parsed.Host, strings.TrimPrefix(parsed.Path, "/"), nil
}

func (f *S3Fetcher) resolveClient() (S3Client, error) {
	if f.Client != nil {
		return f.Client, nil
	}
	sess, sessErr := session.NewSession()
	if sessErr != nil {
		return nil, errors.Wrap(sessErr, "creating AWS session")
	}
	f.Client = s3.New(sess)
	return f.Client, nil
}

func (f *S3Fetcher) Fetch(rawUrl string, dest string) error {
	bucket, key, parseErr := ParseS3Url(rawUrl)
	if parseErr != nil {
		return parseErr
	}
	client, clientErr := f.resolveClient()
	if clientErr != nil {
		return clientErr
	}
	object, getErr := client.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if getErr != nil {
		return errors.Wrapf(getErr, "fetching %s", rawUrl)
	}
	defer object.Body.Close()
	destFile, openErr := os.OpenFile(dest,
		os.O_TRUNC|os.O_RDWR|os.O_CREATE, 0755)
	if openErr != nil {
		return errors.Wrapf(openErr, "error opening %q for write", dest)
	}
	_, ioErr := io.Copy(destFile, object.Body)
	if closeErr := destFile.Close(); ioErr == nil {
		ioErr = closeErr
	}
	if ioErr != nil {
		return errors.Wrapf(ioErr, "error downloading %q", rawUrl)
	}
	return nil
}
