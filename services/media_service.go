package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"log"
	"mime/multipart"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/nfnt/resize"
	"github.com/techagentng/bookloop/config"
	"github.com/techagentng/bookloop/models"
)

// Define allowed MIME types and max file size
const (
	MaxFileSize      = 5 * 1024 * 1024 // 5 MB
	AllowedMimeTypes = "image/jpeg,image/png,image/gif"
)

// MediaService validates, processes and stores listing images
type MediaService interface {
	ValidateImageFile(file *multipart.FileHeader) error
	ProcessBookImage(file *multipart.FileHeader, bookID uuid.UUID, position int) (*models.BookImage, error)
}

type mediaService struct {
	Config *config.Config
}

// NewMediaService creates a new instance of MediaService
func NewMediaService(conf *config.Config) MediaService {
	return &mediaService{
		Config: conf,
	}
}

// ValidateImageFile checks the file type and size
func (s *mediaService) ValidateImageFile(file *multipart.FileHeader) error {
	if file.Size > MaxFileSize {
		return fmt.Errorf("file size exceeds limit of %d bytes", MaxFileSize)
	}

	mimeType := file.Header.Get("Content-Type")
	if !isValidMimeType(mimeType) {
		return fmt.Errorf("invalid file type: %s", mimeType)
	}

	return nil
}

// isValidMimeType checks if the MIME type is allowed
func isValidMimeType(mimeType string) bool {
	allowedTypes := strings.Split(AllowedMimeTypes, ",")
	for _, allowedType := range allowedTypes {
		if mimeType == allowedType {
			return true
		}
	}
	return false
}

// ProcessBookImage decodes the upload, renders a 1080x1080 cover fill and a
// 200px thumbnail, uploads both to S3 and returns the stored image record.
func (s *mediaService) ProcessBookImage(fileHeader *multipart.FileHeader, bookID uuid.UUID, position int) (*models.BookImage, error) {
	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Error opening media file: %v", err)
		return nil, fmt.Errorf("error opening media file: %v", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		log.Printf("Error decoding image: %v", err)
		return nil, fmt.Errorf("failed to decode image: %v", err)
	}

	fullSizeImg := imaging.Fill(img, 1080, 1080, imaging.Center, imaging.Lanczos)
	thumbnailImg := resize.Resize(200, 0, img, resize.Lanczos3)

	fullSizeBytes, err := encodeJPEG(fullSizeImg)
	if err != nil {
		return nil, err
	}
	thumbnailBytes, err := encodeJPEG(thumbnailImg)
	if err != nil {
		return nil, err
	}

	s3Client, err := s.createS3Client()
	if err != nil {
		return nil, err
	}

	imageID := uuid.New()
	fullSizeKey := fmt.Sprintf("books/%s/%s_full.jpg", bookID.String(), imageID.String())
	thumbnailKey := fmt.Sprintf("books/%s/%s_thumb.jpg", bookID.String(), imageID.String())

	fullSizeURL, err := s.uploadBytesToS3(s3Client, fullSizeBytes, fullSizeKey)
	if err != nil {
		return nil, err
	}
	thumbnailURL, err := s.uploadBytesToS3(s3Client, thumbnailBytes, thumbnailKey)
	if err != nil {
		return nil, err
	}

	return &models.BookImage{
		ID:           imageID,
		BookID:       bookID,
		Position:     position,
		FileType:     fileHeader.Header.Get("Content-Type"),
		FileSize:     fileHeader.Size,
		ThumbnailURL: thumbnailURL,
		FullSizeURL:  fullSizeURL,
	}, nil
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		log.Printf("Error encoding image to JPEG: %v", err)
		return nil, fmt.Errorf("error encoding image to JPEG: %v", err)
	}
	return buf.Bytes(), nil
}

func (s *mediaService) createS3Client() (*s3.Client, error) {
	cfg, err := awsConfig.LoadDefaultConfig(context.Background(),
		awsConfig.WithRegion(s.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			os.Getenv("AWS_ACCESS_KEY_ID"),
			os.Getenv("AWS_SECRET_ACCESS_KEY"),
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config, %v", err)
	}

	return s3.NewFromConfig(cfg), nil
}

func (s *mediaService) uploadBytesToS3(client *s3.Client, content []byte, key string) (string, error) {
	bucketName := s.Config.AwsBucket
	if bucketName == "" {
		return "", fmt.Errorf("S3 bucket name is not configured")
	}

	_, err := client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ACL:         types.ObjectCannedACLPublicRead,
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		log.Printf("Error uploading file to S3: %v", err)
		return "", fmt.Errorf("failed to upload file to S3: %v", err)
	}

	fileURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucketName, s.Config.AwsRegion, key)
	return fileURL, nil
}
