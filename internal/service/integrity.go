package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/model"
	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/store"
)

const snapshotVersion = 1

type BackupInfo struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"created_at"`
	Records   int       `json:"records"`
	SizeBytes int64     `json:"size_bytes"`
}

// Snapshot is the portable form of every record in a store, independent of
// the backend that held it.
type Snapshot struct {
	Version   int               `json:"version"`
	CreatedAt time.Time         `json:"created_at"`
	Records   map[string]string `json:"records"`
}

type DoctorReport struct {
	Logs           int      `json:"logs"`
	CorruptLogs    []string `json:"corrupt_logs"`
	MismatchedLogs []string `json:"mismatched_logs"`
	InvalidProfile bool     `json:"invalid_profile"`
	FixedLogs      int      `json:"fixed_logs,omitempty"`
}

func (r DoctorReport) Healthy() bool {
	return len(r.CorruptLogs) == 0 && len(r.MismatchedLogs) == 0 && !r.InvalidProfile
}

func TakeSnapshot(ctx context.Context, kv store.Store) (Snapshot, error) {
	keys, err := kv.Keys(ctx, "")
	if err != nil {
		return Snapshot{}, fmt.Errorf("list records: %w", err)
	}
	snap := Snapshot{Version: snapshotVersion, CreatedAt: time.Now().UTC(), Records: make(map[string]string, len(keys))}
	for _, k := range keys {
		raw, ok, err := kv.Get(ctx, k)
		if err != nil {
			return Snapshot{}, fmt.Errorf("read record %q: %w", k, err)
		}
		if ok {
			snap.Records[k] = string(raw)
		}
	}
	return snap, nil
}

// CreateBackup writes a snapshot of kv to outPath with a sibling .sha256
// checksum file.
func CreateBackup(ctx context.Context, kv store.Store, outPath string) (BackupInfo, error) {
	if strings.TrimSpace(outPath) == "" {
		return BackupInfo{}, fmt.Errorf("backup output path is required")
	}
	snap, err := TakeSnapshot(ctx, kv)
	if err != nil {
		return BackupInfo{}, err
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return BackupInfo{}, fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return BackupInfo{}, fmt.Errorf("create backup directory: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return BackupInfo{}, fmt.Errorf("write backup: %w", err)
	}
	checksum := checksumOf(data)
	if err := os.WriteFile(outPath+".sha256", []byte(checksum+"\n"), 0o644); err != nil {
		return BackupInfo{}, fmt.Errorf("write checksum file: %w", err)
	}
	return BackupInfo{
		Path:      outPath,
		Checksum:  checksum,
		CreatedAt: snap.CreatedAt,
		Records:   len(snap.Records),
		SizeBytes: int64(len(data)),
	}, nil
}

// RestoreBackup loads a snapshot into kv. Existing records with the same
// keys are overwritten; others are left alone. A checksum file, when
// present, must match.
func RestoreBackup(ctx context.Context, kv store.Store, backupPath string) (int, error) {
	if strings.TrimSpace(backupPath) == "" {
		return 0, fmt.Errorf("backup path is required")
	}
	data, err := os.ReadFile(backupPath)
	if err != nil {
		return 0, fmt.Errorf("read backup: %w", err)
	}
	if expected, err := os.ReadFile(backupPath + ".sha256"); err == nil {
		if strings.TrimSpace(string(expected)) != checksumOf(data) {
			return 0, fmt.Errorf("backup checksum mismatch")
		}
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return 0, fmt.Errorf("decode backup: %w", err)
	}
	if snap.Version != snapshotVersion {
		return 0, fmt.Errorf("unsupported backup version %d", snap.Version)
	}
	keys := make([]string, 0, len(snap.Records))
	for k := range snap.Records {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := kv.Put(ctx, k, []byte(snap.Records[k])); err != nil {
			return 0, fmt.Errorf("restore record %q: %w", k, err)
		}
	}
	return len(keys), nil
}

func ListBackups(dir string) ([]BackupInfo, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}
	out := make([]BackupInfo, 0)
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
			continue
		}
		full := filepath.Join(dir, f.Name())
		st, err := os.Stat(full)
		if err != nil {
			continue
		}
		checksum := ""
		if b, err := os.ReadFile(full + ".sha256"); err == nil {
			checksum = strings.TrimSpace(string(b))
		}
		out = append(out, BackupInfo{Path: full, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size()})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// RunDoctor checks every stored log and the saved profile. With fix, logs
// that cannot be decoded are replaced by empty logs and logs stored under
// the wrong date are rewritten with the date from their key.
func RunDoctor(ctx context.Context, kv store.Store, fix bool) (DoctorReport, error) {
	report := DoctorReport{CorruptLogs: []string{}, MismatchedLogs: []string{}}
	dates, err := LoggedDates(ctx, kv)
	if err != nil {
		return report, fmt.Errorf("doctor list logs: %w", err)
	}
	report.Logs = len(dates)

	for _, date := range dates {
		raw, ok, err := kv.Get(ctx, dailyLogKey(date))
		if err != nil {
			return report, fmt.Errorf("doctor read log %s: %w", date, err)
		}
		if !ok {
			continue
		}
		var dl model.DailyLog
		if err := json.Unmarshal(raw, &dl); err != nil {
			report.CorruptLogs = append(report.CorruptLogs, date)
			if fix {
				if err := saveLog(ctx, kv, model.DailyLog{Date: date, Foods: []model.FoodItem{}}); err != nil {
					return report, fmt.Errorf("doctor fix log %s: %w", date, err)
				}
				report.FixedLogs++
			}
			continue
		}
		if dl.Date != date {
			report.MismatchedLogs = append(report.MismatchedLogs, date)
			if fix {
				dl.Date = date
				if dl.Foods == nil {
					dl.Foods = []model.FoodItem{}
				}
				if err := saveLog(ctx, kv, dl); err != nil {
					return report, fmt.Errorf("doctor fix log %s: %w", date, err)
				}
				report.FixedLogs++
			}
		}
	}

	var p model.Profile
	found, err := loadJSON(ctx, kv, profileKey, &p)
	if err != nil {
		return report, fmt.Errorf("doctor read profile: %w", err)
	}
	if found && ValidateProfile(p) != nil {
		report.InvalidProfile = true
	}
	return report, nil
}

func checksumOf(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
