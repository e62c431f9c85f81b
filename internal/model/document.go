package model

import "encoding/json"

// DocumentInfo 是文档列表中的一条记录。
type DocumentInfo struct {
	FileID     string    `json:"fileID"`
	FileName   string    `json:"fileName"`
	LastUpdate LocalTime `json:"lastUpdate"`
}

// UnmarshalJSON 同时接受前端约定的字段名与后端数据库的字段名。
func (d *DocumentInfo) UnmarshalJSON(data []byte) error {
	var raw struct {
		FileID         string     `json:"fileID"`
		FileIDSnake    string     `json:"file_id"`
		FileName       string     `json:"fileName"`
		FileNameSnake  string     `json:"file_name"`
		LastUpdate     *LocalTime `json:"lastUpdate"`
		LastUpdateTime *LocalTime `json:"last_update_time"`
		LastUpdateRaw  *LocalTime `json:"last_update"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.FileID = firstNonEmpty(raw.FileID, raw.FileIDSnake)
	d.FileName = firstNonEmpty(raw.FileName, raw.FileNameSnake)
	switch {
	case raw.LastUpdate != nil:
		d.LastUpdate = *raw.LastUpdate
	case raw.LastUpdateTime != nil:
		d.LastUpdate = *raw.LastUpdateTime
	case raw.LastUpdateRaw != nil:
		d.LastUpdate = *raw.LastUpdateRaw
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
