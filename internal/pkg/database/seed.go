/**
 * 数据库:初始化数据
 * @date: 2026.03.14
 * @description: 从 YAML 文件写入菜单、角色、用户、语言与参数，已存在的记录跳过，可重复执行
 * @func:
 *	1.LoadSeedFile 解析种子文件
 *	2.Seed 在一个事务内写入，返回各表新增条数
 */
package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"backoffice/internal/model/basemodel"
	"backoffice/internal/model/core"
	"backoffice/internal/model/system"
	"backoffice/internal/pkg/auth"
	"backoffice/internal/pkg/logger"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// SeedData 种子文件结构
type SeedData struct {
	Modules   []SeedModule   `yaml:"modules"`
	Languages []SeedLanguage `yaml:"languages"`
	Configs   []SeedConfig   `yaml:"configs"`
	Roles     []SeedRole     `yaml:"roles"`
	Users     []SeedUser     `yaml:"users"`
}

// SeedModule 模块，按实体生成菜单与按钮权限
type SeedModule struct {
	Name     string       `yaml:"name"`
	Title    string       `yaml:"title"`
	Icon     string       `yaml:"icon"`
	Entities []SeedEntity `yaml:"entities"`
}

// SeedEntity 模块下的实体
type SeedEntity struct {
	Name    string   `yaml:"name"`
	Title   string   `yaml:"title"`
	Actions []string `yaml:"actions"` // 为空时生成全部增删改查操作
}

// SeedLanguage 语言
type SeedLanguage struct {
	Name    string `yaml:"name"`
	Code    string `yaml:"code"`
	Default bool   `yaml:"default"`
	Sort    int    `yaml:"sort"`
}

// SeedConfig 系统参数
type SeedConfig struct {
	Name  string `yaml:"name"`
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

// SeedRole 角色，Permissions 为权限码前缀，"*" 表示全部菜单
type SeedRole struct {
	Name        string   `yaml:"name"`
	Code        string   `yaml:"code"`
	Permissions []string `yaml:"permissions"`
}

// SeedUser 用户
type SeedUser struct {
	Username string   `yaml:"username"`
	Password string   `yaml:"password"`
	Nickname string   `yaml:"nickname"`
	Roles    []string `yaml:"roles"`
}

// SeedReport 各表新增条数
type SeedReport struct {
	Counts map[string]int
}

func (r *SeedReport) add(table string) {
	r.Counts[table]++
}

// Tables 按表名排序
func (r *SeedReport) Tables() []string {
	tables := make([]string, 0, len(r.Counts))
	for t := range r.Counts {
		tables = append(tables, t)
	}
	sort.Strings(tables)
	return tables
}

// LoadSeedFile 读取并解析种子文件
func LoadSeedFile(path string) (*SeedData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var data SeedData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return &data, nil
}

// Seed 写入种子数据，已存在的记录(按编码判断)不覆盖
func Seed(ctx context.Context, db *gorm.DB, data *SeedData, passwords *auth.PasswordManager) (*SeedReport, error) {
	report := &SeedReport{Counts: map[string]int{}}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		s := &seeder{tx: tx, report: report, passwords: passwords}
		menus, err := s.menus(data.Modules)
		if err != nil {
			return err
		}
		if err := s.languages(data.Languages); err != nil {
			return err
		}
		if err := s.configs(data.Configs); err != nil {
			return err
		}
		roles, err := s.roles(data.Roles, menus)
		if err != nil {
			return err
		}
		return s.users(data.Users, roles)
	})
	if err != nil {
		return nil, err
	}
	logger.LogSystemEvent("database", "seed", "seed data applied", logrus.InfoLevel, map[string]interface{}{
		"counts": report.Counts,
	})
	return report, nil
}

type seeder struct {
	tx        *gorm.DB
	report    *SeedReport
	passwords *auth.PasswordManager
}

// firstOrCreate 按条件查找，不存在时创建，返回是否新建
func firstOrCreate[T any](s *seeder, table string, entity *T, column string, value interface{}) (bool, error) {
	err := s.tx.Where(column+" = ?", value).First(entity).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("seed %s: %w", table, err)
	}
	if err := s.tx.Create(entity).Error; err != nil {
		return false, fmt.Errorf("seed %s: %w", table, err)
	}
	s.report.add(table)
	return true, nil
}

// menus 生成 目录(模块) / 菜单(实体) / 按钮(操作) 三级菜单，返回全部菜单
func (s *seeder) menus(modules []SeedModule) ([]system.Menu, error) {
	all := make([]system.Menu, 0)
	for i, m := range modules {
		dir := system.Menu{
			MenuName:  m.Title,
			MenuType:  system.MenuTypeDirectory,
			Path:      "/" + m.Name,
			Icon:      m.Icon,
			Sort:      i + 1,
			IsEnabled: basemodel.StatusEnabled,
		}
		if _, err := firstOrCreate(s, "sys_menu", &dir, "path", dir.Path); err != nil {
			return nil, err
		}
		all = append(all, dir)

		for j, e := range m.Entities {
			page := system.Menu{
				ParentID:  dir.ID,
				MenuName:  e.Title,
				MenuType:  system.MenuTypeMenu,
				Path:      "/" + m.Name + "/" + e.Name,
				Component: m.Name + "/" + e.Name + "/index",
				Sort:      j + 1,
				IsEnabled: basemodel.StatusEnabled,
			}
			if _, err := firstOrCreate(s, "sys_menu", &page, "path", page.Path); err != nil {
				return nil, err
			}
			all = append(all, page)

			actions := e.Actions
			if len(actions) == 0 {
				actions = system.CrudActions
			}
			for k, action := range actions {
				code := system.PermissionCode(m.Name, e.Name, action)
				label := system.ActionLabels[action]
				if label == "" {
					label = action
				}
				button := system.Menu{
					ParentID:   page.ID,
					MenuName:   e.Title + label,
					MenuType:   system.MenuTypeButton,
					Permission: code,
					Sort:       k + 1,
					IsEnabled:  basemodel.StatusEnabled,
				}
				if _, err := firstOrCreate(s, "sys_menu", &button, "permission", code); err != nil {
					return nil, err
				}
				all = append(all, button)
			}
		}
	}
	return all, nil
}

func (s *seeder) languages(langs []SeedLanguage) error {
	for _, l := range langs {
		lang := core.Language{
			LanguageName: l.Name,
			LanguageCode: l.Code,
			Sort:         l.Sort,
			IsEnabled:    basemodel.StatusEnabled,
		}
		created, err := firstOrCreate(s, "sys_language", &lang, "language_code", l.Code)
		if err != nil {
			return err
		}
		// 默认语言只在新建且库中尚无默认语言时设置
		if created && l.Default {
			var n int64
			if err := s.tx.Model(&core.Language{}).Where("is_default = ?", true).Count(&n).Error; err != nil {
				return fmt.Errorf("seed sys_language: %w", err)
			}
			if n == 0 {
				if err := s.tx.Model(&lang).Update("is_default", true).Error; err != nil {
					return fmt.Errorf("seed sys_language: %w", err)
				}
			}
		}
	}
	return nil
}

func (s *seeder) configs(configs []SeedConfig) error {
	for _, c := range configs {
		cfg := core.Config{
			ConfigName:  c.Name,
			ConfigKey:   c.Key,
			ConfigValue: c.Value,
			ConfigType:  core.ConfigTypeSystem,
			IsEnabled:   basemodel.StatusEnabled,
		}
		if _, err := firstOrCreate(s, "sys_config", &cfg, "config_key", c.Key); err != nil {
			return err
		}
	}
	return nil
}

// roles 创建角色，新建的角色按权限前缀分配菜单(含上级目录与菜单)
func (s *seeder) roles(roles []SeedRole, menus []system.Menu) (map[string]system.Role, error) {
	byCode := make(map[string]system.Role, len(roles))
	for i, r := range roles {
		role := system.Role{RoleName: r.Name, RoleCode: r.Code, Sort: i + 1, IsEnabled: basemodel.StatusEnabled}
		created, err := firstOrCreate(s, "sys_role", &role, "role_code", r.Code)
		if err != nil {
			return nil, err
		}
		byCode[r.Code] = role
		if !created {
			continue
		}
		selected := selectMenus(menus, r.Permissions)
		if len(selected) == 0 {
			continue
		}
		if err := s.tx.Model(&role).Association("Menus").Replace(selected); err != nil {
			return nil, fmt.Errorf("seed sys_role_menus: %w", err)
		}
		s.report.Counts["sys_role_menus"] += len(selected)
	}
	return byCode, nil
}

// selectMenus 选出权限码匹配任一前缀的按钮及其上级
func selectMenus(menus []system.Menu, prefixes []string) []system.Menu {
	byID := make(map[uint64]system.Menu, len(menus))
	for _, m := range menus {
		byID[m.ID] = m
	}
	picked := map[uint64]bool{}
	for _, m := range menus {
		if !matchAny(m, prefixes) {
			continue
		}
		for cur, ok := m, true; ok && !picked[cur.ID]; cur, ok = byID[cur.ParentID] {
			picked[cur.ID] = true
		}
	}
	out := make([]system.Menu, 0, len(picked))
	for _, m := range menus {
		if picked[m.ID] {
			out = append(out, m)
		}
	}
	return out
}

func matchAny(m system.Menu, prefixes []string) bool {
	for _, p := range prefixes {
		if p == "*" {
			return true
		}
		if m.Permission != "" && strings.HasPrefix(m.Permission, p) {
			return true
		}
	}
	return false
}

func (s *seeder) users(users []SeedUser, roles map[string]system.Role) error {
	for _, u := range users {
		hash, err := s.passwords.HashPassword(u.Password)
		if err != nil {
			return fmt.Errorf("seed sys_user: %w", err)
		}
		user := system.User{Username: u.Username, Nickname: u.Nickname, PasswordHash: hash, IsEnabled: basemodel.StatusEnabled}
		created, err := firstOrCreate(s, "sys_user", &user, "username", u.Username)
		if err != nil {
			return err
		}
		if !created {
			continue
		}
		assigned := make([]system.Role, 0, len(u.Roles))
		for _, code := range u.Roles {
			role, ok := roles[code]
			if !ok {
				return fmt.Errorf("seed sys_user %s: unknown role %s", u.Username, code)
			}
			assigned = append(assigned, role)
		}
		if len(assigned) == 0 {
			continue
		}
		if err := s.tx.Model(&user).Association("Roles").Replace(assigned); err != nil {
			return fmt.Errorf("seed sys_user_roles: %w", err)
		}
		s.report.Counts["sys_user_roles"] += len(assigned)
	}
	return nil
}
