package paramutils

import "time"

type MockFlagSet struct {
	Values map[string]interface{}
}

func (fs *MockFlagSet) GetStringOrDefault(flag, d string) string {
	if val, ok := fs.Values[flag]; ok {
		return val.(string)
	}

	return d
}

func (fs *MockFlagSet) GetBoolOrDefault(flag string, d bool) bool {
	if val, ok := fs.Values[flag]; ok {
		return val.(bool)
	}

	return d
}

func (fs *MockFlagSet) GetIntOrDefault(flag string, d int) int {
	if val, ok := fs.Values[flag]; ok {
		return val.(int)
	}

	return d
}

func (fs *MockFlagSet) GetDurationOrDefault(flag string, d time.Duration) time.Duration {
	if val, ok := fs.Values[flag]; ok {
		return val.(time.Duration)
	}

	return d
}

func (fs *MockFlagSet) Changed(flag string) bool {
	_, ok := fs.Values[flag]

	return ok
}
