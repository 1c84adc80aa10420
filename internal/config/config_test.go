/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"os"
	"testing"
)

// fakeSecretStore keeps secrets in memory so tests never touch the OS keyring.
type fakeSecretStore struct {
	values map[string]string
}

func (f *fakeSecretStore) Get(service, key string) (string, error) {
	v, ok := f.values[service+"/"+key]
	if !ok {
		return "", errors.New("not found")
	}
	return v, nil
}
func (f *fakeSecretStore) Set(service, key, value string) error {
	if f.values == nil {
		f.values = map[string]string{}
	}
	f.values[service+"/"+key] = value
	return nil
}
func (f *fakeSecretStore) Delete(service, key string) error {
	delete(f.values, service+"/"+key)
	return nil
}

func stubSecrets(t *testing.T) *fakeSecretStore {
	t.Helper()
	old := secretStore
	fake := &fakeSecretStore{}
	secretStore = fake
	t.Cleanup(func() { secretStore = old })
	return fake
}

func TestEnvOverridesStoreDriver(t *testing.T) {
	stubSecrets(t)
	old := os.Getenv(EnvStoreDriver)
	_ = os.Setenv(EnvStoreDriver, "POSTGRES")
	t.Cleanup(func() { _ = os.Setenv(EnvStoreDriver, old) })
	cfg, _, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got, want := cfg.Store.Driver, "postgres"; got != want {
		t.Fatalf("Store.Driver = %q, want %q", got, want)
	}
}

func TestEnvOverridesTelemetry(t *testing.T) {
	stubSecrets(t)
	old := os.Getenv(EnvTelemetryOptIn)
	_ = os.Setenv(EnvTelemetryOptIn, "true")
	t.Cleanup(func() { _ = os.Setenv(EnvTelemetryOptIn, old) })
	cfg, _, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.General.TelemetryOptIn {
		t.Fatalf("General.TelemetryOptIn expected true from env override")
	}
}

func TestDSNPrefersEnvOverKeyring(t *testing.T) {
	fake := stubSecrets(t)
	_ = fake.Set(keyringService, keyringPGDSN, "postgres://keyring/db")
	old := os.Getenv(EnvPostgresDSN)
	_ = os.Setenv(EnvPostgresDSN, "postgres://env/db")
	t.Cleanup(func() { _ = os.Setenv(EnvPostgresDSN, old) })
	_, dsn, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if dsn != "postgres://env/db" {
		t.Fatalf("dsn = %q, want env value", dsn)
	}
}

func TestDSNFallsBackToKeyring(t *testing.T) {
	fake := stubSecrets(t)
	_ = fake.Set(keyringService, keyringPGDSN, "postgres://keyring/db")
	old := os.Getenv(EnvPostgresDSN)
	_ = os.Unsetenv(EnvPostgresDSN)
	t.Cleanup(func() { _ = os.Setenv(EnvPostgresDSN, old) })
	_, dsn, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if dsn != "postgres://keyring/db" {
		t.Fatalf("dsn = %q, want keyring value", dsn)
	}
}

func TestMergeIncludesGeneral(t *testing.T) {
	// Given a file config with general fields set, mergeInto should carry them through
	dst := Defaults()
	src := Defaults()
	src.General.TelemetryOptIn = true
	src.General.DefaultRuntime = 120
	src.General.DefaultStyle = " Comedy "
	mergeInto(&dst, &src)
	if !dst.General.TelemetryOptIn || dst.General.DefaultRuntime != 120 || dst.General.DefaultStyle != "comedy" {
		t.Fatalf("general fields not merged correctly: %#v", dst.General)
	}
}

func TestMergeIncludesLogging(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.Logging.Level = "debug"
	src.Logging.Format = "json"
	src.Logging.Source = true
	src.Logging.File = "C:/tmp/gsw.log"
	mergeInto(&dst, &src)
	if dst.Logging.Level != "debug" || dst.Logging.Format != "json" || !dst.Logging.Source || dst.Logging.File != "C:/tmp/gsw.log" {
		t.Fatalf("logging fields not merged correctly: %#v", dst.Logging)
	}
}

func TestEnvOverridesLogging(t *testing.T) {
	stubSecrets(t)
	oldLevel := os.Getenv(EnvLogLevel)
	oldFmt := os.Getenv(EnvLogFormat)
	oldSrc := os.Getenv(EnvLogSource)
	oldFile := os.Getenv(EnvLogFile)
	_ = os.Setenv(EnvLogLevel, "error")
	_ = os.Setenv(EnvLogFormat, "json")
	_ = os.Setenv(EnvLogSource, "1")
	_ = os.Setenv(EnvLogFile, "X:/gsw.log")
	t.Cleanup(func() {
		_ = os.Setenv(EnvLogLevel, oldLevel)
		_ = os.Setenv(EnvLogFormat, oldFmt)
		_ = os.Setenv(EnvLogSource, oldSrc)
		_ = os.Setenv(EnvLogFile, oldFile)
	})
	cfg, _, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Logging.Level != "error" || cfg.Logging.Format != "json" || !cfg.Logging.Source || cfg.Logging.File != "X:/gsw.log" {
		t.Fatalf("env overrides not applied to logging: %#v", cfg.Logging)
	}
}

func TestEnvOverrideFor(t *testing.T) {
	old := os.Getenv(EnvDefaultRuntime)
	_ = os.Setenv(EnvDefaultRuntime, "90")
	t.Cleanup(func() { _ = os.Setenv(EnvDefaultRuntime, old) })
	name, ok := EnvOverrideFor("general.default_runtime")
	if !ok || name != EnvDefaultRuntime {
		t.Fatalf("EnvOverrideFor = %q, %v", name, ok)
	}
	if _, ok := EnvOverrideFor("store.nonexistent"); ok {
		t.Fatalf("unexpected override for unknown key")
	}
}
