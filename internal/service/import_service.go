package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zyrrhky/schedease/internal/dto"
	"github.com/zyrrhky/schedease/internal/model"
	"github.com/zyrrhky/schedease/internal/parse"
	"github.com/zyrrhky/schedease/internal/repository"
)

// ── 导入模块业务错误 ──

var ErrImportNoData = errors.New("未识别出任何课程记录")

// ImportService 导入业务接口
//
// 两条导入通道共用同一落库管线：
//   - 粘贴文本：ParsePlainText → NormalizeRecord
//   - CSV 文本：ParseCSV → NormalizeCSVRow
//
// 与已有课程同名（大小写不敏感）的记录跳过并计数，不中断整批导入。
type ImportService interface {
	ImportPaste(ctx context.Context, userID string, req *dto.ImportPasteRequest) (*dto.ImportResponse, error)
	ImportCSV(ctx context.Context, userID string, req *dto.ImportCSVRequest) (*dto.ImportResponse, error)
}

type importService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewImportService 创建 ImportService 实例
func NewImportService(repo *repository.Repository, logger *zap.Logger) ImportService {
	return &importService{repo: repo, logger: logger}
}

// ════════════════════════ ImportPaste ════════════════════════

func (s *importService) ImportPaste(ctx context.Context, userID string, req *dto.ImportPasteRequest) (*dto.ImportResponse, error) {
	raws := parse.ParsePlainText(req.Text)
	if len(raws) == 0 {
		return nil, ErrImportNoData
	}

	records := make([]parse.Record, 0, len(raws))
	for _, raw := range raws {
		records = append(records, parse.NormalizeRecord(raw, uuid.NewString))
	}

	return s.persist(ctx, userID, records)
}

// ════════════════════════ ImportCSV ════════════════════════

func (s *importService) ImportCSV(ctx context.Context, userID string, req *dto.ImportCSVRequest) (*dto.ImportResponse, error) {
	rows := parse.ParseCSV(req.Text)
	if len(rows) == 0 {
		return nil, ErrImportNoData
	}

	records := make([]parse.Record, 0, len(rows))
	for _, row := range rows {
		rec := parse.NormalizeCSVRow(row, uuid.NewString)
		if rec.SubjectTitle == "" && rec.SubjectCode == "" {
			continue // 无法识别的空行
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, ErrImportNoData
	}

	return s.persist(ctx, userID, records)
}

// ── 内部落库管线 ──

func (s *importService) persist(ctx context.Context, userID string, records []parse.Record) (*dto.ImportResponse, error) {
	resp := &dto.ImportResponse{Subjects: []dto.SubjectResponse{}}

	// 批内标题去重 + 与库内已有课程判重
	seenTitles := make(map[string]bool, len(records))
	var toInsert []model.Subject

	for _, rec := range records {
		title := strings.TrimSpace(rec.SubjectTitle)
		titleKey := strings.ToLower(title)

		if titleKey != "" {
			if seenTitles[titleKey] {
				resp.SkippedCount++
				continue
			}
			exists, err := s.repo.Subject.ExistsByTitle(ctx, userID, title)
			if err != nil {
				s.logger.Error("标题判重失败", zap.Error(err))
				return nil, err
			}
			if exists {
				resp.SkippedCount++
				continue
			}
			seenTitles[titleKey] = true
		}

		dataID := rec.DataID
		if dataID == "" {
			dataID = uuid.NewString()
		}
		if taken, err := s.repo.Subject.ExistsByDataID(ctx, userID, dataID); err != nil {
			s.logger.Error("data_id 判重失败", zap.Error(err))
			return nil, err
		} else if taken {
			dataID = uuid.NewString() // 冲突时重铸
		}

		toInsert = append(toInsert, model.Subject{
			UserID:        userID,
			DataID:        dataID,
			Number:        rec.Number,
			OfferingDept:  rec.OfferingDept,
			SubjectCode:   rec.SubjectCode,
			SubjectTitle:  title,
			Section:       rec.Section,
			Schedule:      rec.Schedule,
			Room:          rec.Room,
			CreditedUnits: rec.CreditedUnits,
			TotalSlots:    rec.TotalSlots,
			Enrolled:      rec.Enrolled,
			Assessed:      rec.Assessed,
			IsClosed:      rec.IsClosed,
			Modality:      string(rec.Modality),
		})
	}

	if len(toInsert) == 0 {
		// 全部被判重跳过：导入动作本身有效，返回空结果而非报错
		return resp, nil
	}

	if err := s.repo.Subject.BatchCreate(ctx, toInsert); err != nil {
		s.logger.Error("批量写入课程失败", zap.Error(err))
		return nil, err
	}

	resp.ImportedCount = len(toInsert)
	for i := range toInsert {
		resp.Subjects = append(resp.Subjects, *toSubjectResponse(&toInsert[i]))
	}
	return resp, nil
}
