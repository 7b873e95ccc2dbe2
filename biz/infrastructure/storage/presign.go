package storage

import (
	"strings"
	"time"

	"flashcard-show/biz/infrastructure/config"
	"flashcard-show/biz/infrastructure/util/log"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// IImageSigner 把卡片上的图片引用转换成可直接访问的地址
type IImageSigner interface {
	SignImage(ref string) (string, error)
}

type S3Signer struct {
	client *s3.S3
	bucket string
	expire time.Duration
}

func NewImageSigner(config *config.Config) (IImageSigner, error) {
	c := config.Storage
	if c.Bucket == "" {
		log.Info("storage bucket not configured, image refs pass through")
		return passThrough{}, nil
	}
	awsConf := &aws.Config{
		Region:           aws.String(c.Region),
		Credentials:      credentials.NewStaticCredentials(c.AccessKey, c.SecretKey, ""),
		S3ForcePathStyle: aws.Bool(true),
	}
	if c.Endpoint != "" {
		awsConf.Endpoint = aws.String(c.Endpoint)
	}
	sess, err := session.NewSession(awsConf)
	if err != nil {
		return nil, err
	}
	return &S3Signer{
		client: s3.New(sess),
		bucket: c.Bucket,
		expire: time.Duration(c.PresignExpire) * time.Second,
	}, nil
}

// SignImage 完整url原样返回, 其余视为桶内key生成预签名GET地址
func (s *S3Signer) SignImage(ref string) (string, error) {
	if ref == "" || isAbsolute(ref) {
		return ref, nil
	}
	req, _ := s.client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(strings.TrimPrefix(ref, "/")),
	})
	return req.Presign(s.expire)
}

type passThrough struct{}

func (passThrough) SignImage(ref string) (string, error) {
	return ref, nil
}

func isAbsolute(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}
