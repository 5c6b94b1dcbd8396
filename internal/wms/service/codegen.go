package service

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ewceniza9009/wmsc-sub000/internal/wms/entity"
	"github.com/ewceniza9009/wmsc-sub000/internal/wms/repository"
	"github.com/ewceniza9009/wmsc-sub000/internal/wms/sequence"
)

// CodeAllocator 单号分配器。
// 默认路径沿用原始实现："读该前缀最大单号，再算下一号"，读取在插入事务之外，
// 两个并发请求可能拿到同一个号（见 sequence 包说明）。
// hardened 开启后改走 Redis INCR 计数器，计数器首次使用时用当前最大单号播种，
// 此时并发分配保证各拿各的号。行为差异由配置显式声明，不做静默替换。
type CodeAllocator struct {
	receivingRepo *repository.ReceivingRepository
	palletRepo    *repository.PalletRepository
	rdb           *redis.Client
	hardened      bool
}

func NewCodeAllocator(receivingRepo *repository.ReceivingRepository, palletRepo *repository.PalletRepository, rdb *redis.Client, hardened bool) *CodeAllocator {
	return &CodeAllocator{
		receivingRepo: receivingRepo,
		palletRepo:    palletRepo,
		rdb:           rdb,
		hardened:      hardened,
	}
}

// NextReceivingNo 分配下一个入库单号（SRNU + 9位）
func (a *CodeAllocator) NextReceivingNo(ctx context.Context) (string, error) {
	return a.next(ctx, entity.ReceivingCodePrefix, func() (string, error) {
		return a.receivingRepo.MaxReceivingNo(ctx, entity.ReceivingCodePrefix)
	})
}

// NextPalletNo 分配下一个托盘号（PALT + 9位）
func (a *CodeAllocator) NextPalletNo(ctx context.Context) (string, error) {
	return a.next(ctx, entity.PalletCodePrefix, func() (string, error) {
		return a.palletRepo.MaxPalletNo(ctx, entity.PalletCodePrefix)
	})
}

// NextPalletNoAfter 批内连续分配托盘号。同一批次插入前库内最大号不变，
// 调用方把本批已发出的最后一个号作为 floor 传入，避免批内重号。
// hardened 路径下 INCR 本身保证不重号，floor 只参与播种前的取大。
func (a *CodeAllocator) NextPalletNoAfter(ctx context.Context, floor string) (string, error) {
	return a.next(ctx, entity.PalletCodePrefix, func() (string, error) {
		latest, err := a.palletRepo.MaxPalletNo(ctx, entity.PalletCodePrefix)
		if err != nil {
			return "", err
		}
		if floor > latest {
			latest = floor
		}
		return latest, nil
	})
}

func (a *CodeAllocator) next(ctx context.Context, prefix string, maxCode func() (string, error)) (string, error) {
	if a.hardened && a.rdb != nil {
		return a.nextHardened(ctx, prefix, maxCode)
	}

	latest, err := maxCode()
	if err != nil {
		return "", fmt.Errorf("查询最大单号失败: %w", err)
	}
	code, err := sequence.Next(prefix, entity.CodeDigitWidth, latest)
	if err != nil {
		return "", fmt.Errorf("生成单号失败: %w", err)
	}
	return code, nil
}

func (a *CodeAllocator) nextHardened(ctx context.Context, prefix string, maxCode func() (string, error)) (string, error) {
	key := "wmsc:seq:" + prefix

	// 计数器不存在时用当前最大单号播种，SetNX 保证只有一个请求播种成功
	exists, err := a.rdb.Exists(ctx, key).Result()
	if err != nil {
		return "", fmt.Errorf("单号计数器不可用: %w", err)
	}
	if exists == 0 {
		latest, err := maxCode()
		if err != nil {
			return "", fmt.Errorf("查询最大单号失败: %w", err)
		}
		seed := int64(0)
		if latest != "" {
			// 经 sequence.Next 校验后缀再取数值部分
			next, err := sequence.Next(prefix, entity.CodeDigitWidth, latest)
			if err != nil {
				return "", fmt.Errorf("生成单号失败: %w", err)
			}
			var n int64
			if _, err := fmt.Sscanf(next[len(prefix):], "%d", &n); err != nil {
				return "", fmt.Errorf("单号解析失败: %w", err)
			}
			seed = n - 1
		}
		a.rdb.SetNX(ctx, key, seed, 0)
	}

	n, err := a.rdb.Incr(ctx, key).Result()
	if err != nil {
		return "", fmt.Errorf("单号计数器递增失败: %w", err)
	}
	return fmt.Sprintf("%s%0*d", prefix, entity.CodeDigitWidth, n), nil
}
