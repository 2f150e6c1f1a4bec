package apps

import (
	"github.com/stretchr/testify/mock"

	"github.com/appkit-dev/syscheck/pkg/apps"
	"github.com/appkit-dev/syscheck/pkg/check"
)

// MockModel is a registrable model whose Check method is backed by testify/mock.
type MockModel struct {
	apps.Base
	mock.Mock
}

// NewMockModel creates a MockModel with the given object name.
func NewMockModel(objectName string) *MockModel {
	m := &MockModel{}
	m.ModelMeta().ObjectName = objectName

	return m
}

func (m *MockModel) Check(opts check.Options) []check.Diagnostic {
	args := m.Called(opts)

	if d := args.Get(0); d != nil {
		return d.([]check.Diagnostic)
	}

	return nil
}
