package services

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Service guarda os documentos digitalizados das inscrições (propostas,
// fotografias) num bucket S3
type S3Service struct {
	BucketName string
	Client     *s3.Client
}

// NewS3Service inicializa o serviço S3
func NewS3Service(bucketName, region string) (*S3Service, error) {
	if bucketName == "" {
		return nil, fmt.Errorf("o nome do bucket não está configurado")
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar a configuração AWS: %w", err)
	}

	return &S3Service{
		BucketName: bucketName,
		Client:     s3.NewFromConfig(cfg),
	}, nil
}

// UploadDocument envia um documento para o bucket e devolve o URL público
func (s *S3Service) UploadDocument(ctx context.Context, file multipart.File, fileHeader *multipart.FileHeader) (string, error) {
	defer file.Close()

	buffer := bytes.NewBuffer(nil)
	if _, err := buffer.ReadFrom(file); err != nil {
		return "", fmt.Errorf("erro ao ler o ficheiro: %w", err)
	}

	// Nome único para evitar colisões entre inscrições
	filename := fmt.Sprintf("%d_%s", time.Now().Unix(), fileHeader.Filename)

	_, err := s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.BucketName),
		Key:         aws.String(filename),
		Body:        bytes.NewReader(buffer.Bytes()),
		ContentType: aws.String(fileHeader.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", fmt.Errorf("erro ao enviar o ficheiro para o S3: %w", err)
	}

	url := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.BucketName, filename)
	return url, nil
}
