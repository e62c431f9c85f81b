package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyDepartment(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		want        DepartmentTag
	}{
		{name: "docx", contentType: ContentTypeDocx, want: DepartmentDocx},
		{name: "pptx", contentType: ContentTypePptx, want: DepartmentPptx},
		{name: "docx with params", contentType: ContentTypeDocx + "; charset=binary", want: DepartmentDocx},
		{name: "upper case", contentType: "APPLICATION/VND.OPENXMLFORMATS-OFFICEDOCUMENT.PRESENTATIONML.PRESENTATION", want: DepartmentPptx},
		{name: "pdf", contentType: "application/pdf", want: DepartmentNone},
		{name: "empty", contentType: "", want: DepartmentNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyDepartment(tt.contentType))
		})
	}
}

func TestParseDepartment(t *testing.T) {
	got, ok := ParseDepartment(" PPTX ")
	assert.True(t, ok)
	assert.Equal(t, DepartmentPptx, got)

	_, ok = ParseDepartment("none")
	assert.False(t, ok)
}

func TestUploadLifecycle(t *testing.T) {
	s := NewSession()
	job := s.UploadJob()
	assert.Equal(t, UploadIdle, job.Status)
	assert.Nil(t, job.File)

	_, err := s.BeginUpload("default", nil)
	assert.ErrorIs(t, err, ErrNoFileSelected)

	job = s.SelectFile("job-1", UploadFile{Name: "slides.pptx", ContentType: ContentTypePptx, Size: 3, Data: []byte("abc")})
	assert.Equal(t, DepartmentPptx, job.DepartmentTag)
	assert.Equal(t, UploadIdle, job.Status)

	job, err = s.BeginUpload("econ", []string{"week1"})
	require.NoError(t, err)
	assert.Equal(t, UploadInProgress, job.Status)
	assert.Equal(t, []string{"week1"}, job.Tags)

	_, err = s.BeginUpload("econ", nil)
	assert.ErrorIs(t, err, ErrUploadNotIdle)

	job, err = s.FinishUpload("job-1", "", errors.New("rejected"))
	require.NoError(t, err)
	assert.Equal(t, UploadFailed, job.Status)
	assert.NotNil(t, job.File)
	assert.Equal(t, "rejected", job.Error)

	// 失败后必须重新选择文件
	_, err = s.BeginUpload("econ", nil)
	assert.ErrorIs(t, err, ErrUploadNotIdle)

	s.SelectFile("job-2", UploadFile{Name: "notes.docx", ContentType: ContentTypeDocx, Size: 1, Data: []byte("x")})
	_, err = s.BeginUpload("econ", nil)
	require.NoError(t, err)
	job, err = s.FinishUpload("job-2", "file-9", nil)
	require.NoError(t, err)
	assert.Equal(t, UploadSucceeded, job.Status)
	assert.Equal(t, "file-9", job.FileID)

	job = s.DismissUpload()
	assert.Equal(t, UploadIdle, job.Status)
	assert.Nil(t, job.File)
	assert.Equal(t, DepartmentNone, job.DepartmentTag)
}

func TestFinishUploadStaleJob(t *testing.T) {
	s := NewSession()
	s.SelectFile("old", UploadFile{Name: "a.docx", ContentType: ContentTypeDocx, Data: []byte("a")})
	_, err := s.BeginUpload("default", nil)
	require.NoError(t, err)

	s.SelectFile("new", UploadFile{Name: "b.pdf", ContentType: "application/pdf", Data: []byte("b")})
	job, err := s.FinishUpload("old", "file-1", nil)
	assert.ErrorIs(t, err, ErrStaleUploadJob)
	assert.Equal(t, "new", job.ID)
	assert.Equal(t, UploadIdle, job.Status)
}

func TestDispatchAndRatingGuards(t *testing.T) {
	s := NewSession()
	require.True(t, s.BeginDispatch())
	assert.False(t, s.BeginDispatch())
	s.EndDispatch()
	assert.True(t, s.BeginDispatch())

	require.True(t, s.BeginRating("q1"))
	assert.False(t, s.BeginRating("q1"))
	assert.True(t, s.BeginRating("q2"))
	s.EndRating("q1")
	assert.True(t, s.BeginRating("q1"))
}

func TestDocumentInfoUnmarshal(t *testing.T) {
	var docs []DocumentInfo
	raw := `[
		{"file_id": "1", "file_name": "a.docx", "last_update_time": "2024-03-01 10:20:30"},
		{"fileID": "2", "fileName": "b.pptx", "lastUpdate": "2024-03-02T08:00:00"}
	]`
	require.NoError(t, json.Unmarshal([]byte(raw), &docs))
	require.Len(t, docs, 2)
	assert.Equal(t, "1", docs[0].FileID)
	assert.Equal(t, "a.docx", docs[0].FileName)
	assert.Equal(t, "2024-03-01 10:20:30", docs[0].LastUpdate.String())
	assert.Equal(t, "2", docs[1].FileID)
	assert.Equal(t, "b.pptx", docs[1].FileName)
	assert.Equal(t, "2024-03-02 08:00:00", docs[1].LastUpdate.String())
}
