// Package testutil provides test helpers and mock implementations for the
// interfaces defined in pkg/scaffold and its subpackages.
package testutil

import (
	"io"
	"text/template"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/stackvity/pagegen/pkg/scaffold"
	tpl "github.com/stackvity/pagegen/pkg/scaffold/template"
)

// MockHooks provides a mock implementation of the scaffold.Hooks interface.
// Configure expectations using testify/mock methods (e.g., .On("OnPageStatusUpdate", ...).Return(...)).
type MockHooks struct {
	mock.Mock
}

// OnPageDiscovered mocks the OnPageDiscovered method.
func (m *MockHooks) OnPageDiscovered(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

// OnPageStatusUpdate mocks the OnPageStatusUpdate method.
func (m *MockHooks) OnPageStatusUpdate(path string, status scaffold.Status, message string, duration time.Duration) error {
	args := m.Called(path, status, message, duration)
	return args.Error(0)
}

// OnRunComplete mocks the OnRunComplete method.
func (m *MockHooks) OnRunComplete(report scaffold.Report) error {
	args := m.Called(report)
	return args.Error(0)
}

// MockLanguageDetector provides a mock implementation of the language.Detector interface.
type MockLanguageDetector struct {
	mock.Mock
}

// Detect mocks the Detect method.
func (m *MockLanguageDetector) Detect(pagePath string) string {
	args := m.Called(pagePath)
	return args.String(0)
}

// MockTemplateExecutor provides a mock implementation of the template.Executor interface.
type MockTemplateExecutor struct {
	mock.Mock
}

// Execute mocks the Execute method.
func (m *MockTemplateExecutor) Execute(w io.Writer, tmpl *template.Template, data *tpl.PageData) error {
	args := m.Called(w, tmpl, data)
	return args.Error(0)
}

// MockEncoder provides a mock implementation of the encoding.Encoder interface.
type MockEncoder struct {
	mock.Mock
}

// Encode mocks the Encode method.
func (m *MockEncoder) Encode(content []byte) (encoded []byte, err error) {
	args := m.Called(content)
	encoded, _ = args.Get(0).([]byte) // nil when the test returns an error
	err = args.Error(1)
	return
}

// Name mocks the Name method.
func (m *MockEncoder) Name() string {
	args := m.Called()
	return args.String(0)
}
