package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"github.com/ewceniza9009/wmsc-sub000/internal/wms/entity"
	"github.com/ewceniza9009/wmsc-sub000/internal/wms/repository"
)

// AttachmentService 入库单附件（送货单、验收照片），文件落 MinIO，记录落库
type AttachmentService struct {
	repo        *repository.ReceivingRepository
	minioClient *minio.Client
	bucketName  string
}

func NewAttachmentService(repo *repository.ReceivingRepository, minioClient *minio.Client, bucketName string) *AttachmentService {
	return &AttachmentService{
		repo:        repo,
		minioClient: minioClient,
		bucketName:  bucketName,
	}
}

func (s *AttachmentService) Upload(ctx context.Context, receivingID, userID string, reader io.Reader, fileName string, fileSize int64, contentType string) (*entity.ReceivingAttachment, error) {
	if _, err := s.repo.GetByID(ctx, receivingID); err != nil {
		return nil, fmt.Errorf("入库单 %s: %w", receivingID, translateNotFound(err))
	}

	objectKey := fmt.Sprintf("receivings/%s/%s%s", receivingID, uuid.New().String()[:8], filepath.Ext(fileName))

	if s.minioClient != nil {
		_, err := s.minioClient.PutObject(ctx, s.bucketName, objectKey, reader, fileSize, minio.PutObjectOptions{
			ContentType: contentType,
		})
		if err != nil {
			return nil, fmt.Errorf("上传附件失败: %w", err)
		}
	}

	att := &entity.ReceivingAttachment{
		ID:          uuid.New().String(),
		ReceivingID: receivingID,
		ObjectKey:   objectKey,
		FileName:    fileName,
		Size:        fileSize,
		ContentType: contentType,
		CreatedBy:   userID,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.CreateAttachment(ctx, att); err != nil {
		return nil, fmt.Errorf("保存附件记录失败: %w", err)
	}
	return att, nil
}

func (s *AttachmentService) List(ctx context.Context, receivingID string) ([]entity.ReceivingAttachment, error) {
	if _, err := s.repo.GetByID(ctx, receivingID); err != nil {
		return nil, fmt.Errorf("入库单 %s: %w", receivingID, translateNotFound(err))
	}
	return s.repo.ListAttachments(ctx, receivingID)
}

// Download 返回附件内容流，调用方负责关闭
func (s *AttachmentService) Download(ctx context.Context, id string) (io.ReadCloser, *entity.ReceivingAttachment, error) {
	att, err := s.repo.GetAttachment(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("附件 %s: %w", id, translateNotFound(err))
	}
	if s.minioClient == nil {
		return nil, nil, fmt.Errorf("对象存储未配置")
	}
	object, err := s.minioClient.GetObject(ctx, s.bucketName, att.ObjectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("读取附件失败: %w", err)
	}
	return object, att, nil
}

func (s *AttachmentService) Delete(ctx context.Context, id string) error {
	att, err := s.repo.GetAttachment(ctx, id)
	if err != nil {
		return fmt.Errorf("附件 %s: %w", id, translateNotFound(err))
	}
	if s.minioClient != nil {
		if err := s.minioClient.RemoveObject(ctx, s.bucketName, att.ObjectKey, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("删除附件对象失败: %w", err)
		}
	}
	return s.repo.DeleteAttachment(ctx, id)
}
