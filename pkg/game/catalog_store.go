package game

import (
	"fmt"
	"log"

	"github.com/decker502/blockgrid/pkg/config"
	"github.com/quasilyte/gdata/v2"
)

// 存储路径常量
const (
	catalogObject   = "catalog"
	catalogProperty = "override"
)

// CatalogStore 方块目录覆盖配置的持久化存储
//
// 编辑工具可以把调整后的目录（权重、形状）保存为覆盖配置，
// 下次启动时优先于内置的 data/block_catalog.yaml 加载。
type CatalogStore struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）

	// 降级模式下的内存副本
	memory []byte
}

// NewCatalogStore 创建目录存储
//
// 参数：
//   - gdataManager: gdata 存储管理器，可为 nil（降级模式，仅保存在内存中）
func NewCatalogStore(gdataManager *gdata.Manager) *CatalogStore {
	return &CatalogStore{gdataManager: gdataManager}
}

// OpenCatalogStore 以应用名打开 gdata 存储
// 打开失败时记录警告并返回降级模式的存储
func OpenCatalogStore(appName string) *CatalogStore {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[CatalogStore] Warning: Failed to open gdata storage: %v (overrides kept in memory)", err)
		return NewCatalogStore(nil)
	}
	return NewCatalogStore(m)
}

// Persistent 是否能够持久化
func (cs *CatalogStore) Persistent() bool {
	return cs.gdataManager != nil
}

// Exists 是否存在已保存的覆盖配置
func (cs *CatalogStore) Exists() bool {
	if cs.gdataManager == nil {
		return len(cs.memory) > 0
	}
	return cs.gdataManager.ObjectPropExists(catalogObject, catalogProperty)
}

// Save 保存目录覆盖配置
//
// 保存前重新校验目录，非法目录不会被写入。
//
// 返回：
//   - error: 校验、序列化或保存失败时返回错误
func (cs *CatalogStore) Save(catalog *config.BlockCatalog) error {
	if catalog == nil {
		return fmt.Errorf("catalog cannot be nil")
	}
	if err := catalog.Build(); err != nil {
		return fmt.Errorf("refusing to save invalid catalog: %w", err)
	}

	data, err := catalog.Marshal()
	if err != nil {
		return err
	}

	// 降级模式：只保存在内存中，不报错
	if cs.gdataManager == nil {
		cs.memory = data
		return nil
	}

	if err := cs.gdataManager.SaveObjectProp(catalogObject, catalogProperty, data); err != nil {
		return fmt.Errorf("failed to save catalog override: %w", err)
	}

	log.Printf("[CatalogStore] Catalog override saved (%d bytes)", len(data))
	return nil
}

// Load 加载目录覆盖配置
//
// 返回：
//   - *config.BlockCatalog: 覆盖配置；不存在时为 nil
//   - error: 读取或解析失败时返回错误
func (cs *CatalogStore) Load() (*config.BlockCatalog, error) {
	if !cs.Exists() {
		return nil, nil
	}

	var data []byte
	if cs.gdataManager == nil {
		data = cs.memory
	} else {
		loaded, err := cs.gdataManager.LoadObjectProp(catalogObject, catalogProperty)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog override: %w", err)
		}
		data = loaded
	}

	catalog, err := config.ParseBlockCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog override: %w", err)
	}

	log.Printf("[CatalogStore] Catalog override loaded")
	return catalog, nil
}

// Delete 删除覆盖配置（恢复使用内置目录）
func (cs *CatalogStore) Delete() error {
	if cs.gdataManager == nil {
		cs.memory = nil
		return nil
	}
	if !cs.gdataManager.ObjectPropExists(catalogObject, catalogProperty) {
		return nil
	}
	if err := cs.gdataManager.DeleteObjectProp(catalogObject, catalogProperty); err != nil {
		return fmt.Errorf("failed to delete catalog override: %w", err)
	}
	log.Printf("[CatalogStore] Catalog override deleted")
	return nil
}

// LoadCatalog 加载当前生效的方块目录
// 存在合法的覆盖配置时使用覆盖配置，否则从嵌入资源加载 path
func LoadCatalog(store *CatalogStore, path string) (*config.BlockCatalog, error) {
	if store != nil {
		override, err := store.Load()
		if err != nil {
			log.Printf("[CatalogStore] Warning: %v (falling back to %s)", err, path)
		} else if override != nil {
			return override, nil
		}
	}
	return config.LoadBlockCatalog(path)
}
