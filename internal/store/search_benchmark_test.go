/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package store

import (
	"context"
	"fmt"
	"testing"
)

func BenchmarkSearchFTS(b *testing.B) {
	st, err := OpenSQLite(b.TempDir())
	if err != nil {
		b.Fatalf("OpenSQLite: %v", err)
	}
	defer func() { _ = st.Close() }()

	ctx := context.Background()
	for i := 0; i < 50; i++ {
		s := sampleScript(fmt.Sprintf("Benchmark Script %d", i))
		s.Topic = fmt.Sprintf("detective case number %d", i)
		if _, err := st.Create(ctx, s); err != nil {
			b.Fatalf("Create: %v", err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := st.Search(ctx, "detective", 20); err != nil {
			b.Fatalf("Search: %v", err)
		}
	}
}

func BenchmarkCreate(b *testing.B) {
	st, err := OpenSQLite(b.TempDir())
	if err != nil {
		b.Fatalf("OpenSQLite: %v", err)
	}
	defer func() { _ = st.Close() }()

	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := st.Create(ctx, sampleScript(fmt.Sprintf("Script %d", i))); err != nil {
			b.Fatalf("Create: %v", err)
		}
	}
}
