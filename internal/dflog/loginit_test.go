/*
 *     Copyright 2024 The Dragonfly Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package logger

import (
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

var mockRotateConfig = LogRotateConfig{
	MaxSize:    1,
	MaxAge:     1,
	MaxBackups: 1,
}

func TestInitStacklearn(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		console bool
		expect  func(t *testing.T, dir string, err error)
	}{
		{
			name:    "console logger",
			verbose: false,
			console: true,
			expect: func(t *testing.T, dir string, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.False(IsDebug())
				assert.NoFileExists(path.Join(dir, CoreLogFileName))
			},
		},
		{
			name:    "verbose console logger",
			verbose: true,
			console: true,
			expect: func(t *testing.T, dir string, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.True(IsDebug())
			},
		},
		{
			name:    "file logger",
			verbose: true,
			console: false,
			expect: func(t *testing.T, dir string, err error) {
				assert := assert.New(t)
				require := require.New(t)
				require.NoError(err)
				assert.True(IsDebug())

				WithLearner("SL.extraTrees", "gaussian").Infof("fitted %d rows", 30)
				HTTPLogger.Infow("/healthy", "status", 200)
				require.NoError(CoreLogger.Sync())
				require.NoError(HTTPLogger.Sync())

				core, err := os.ReadFile(path.Join(dir, CoreLogFileName))
				require.NoError(err)
				assert.Contains(string(core), "fitted 30 rows")
				assert.Contains(string(core), `"learner":"SL.extraTrees"`)

				http, err := os.ReadFile(path.Join(dir, HTTPLogFileName))
				require.NoError(err)
				assert.Contains(string(http), "/healthy")

				SetLevel(zapcore.InfoLevel)
				assert.False(IsDebug())
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			tc.expect(t, dir, InitStacklearn(tc.verbose, tc.console, dir, mockRotateConfig))
		})
	}

	assert.NoError(t, InitStacklearn(false, true, "", mockRotateConfig))
}
