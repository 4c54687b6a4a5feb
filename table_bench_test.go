package chaintable

import (
	"fmt"
	"testing"
)

var (
	testDataSmall [8]string
	testData      [128]string
	testDataLarge [8 << 10]string
)

func init() {
	for i := range testDataSmall {
		testDataSmall[i] = fmt.Sprintf("%b", i)
	}
	for i := range testData {
		testData[i] = fmt.Sprintf("%b", i)
	}
	for i := range testDataLarge {
		testDataLarge[i] = fmt.Sprintf("%b", i)
	}
}

func BenchmarkTablePutStringSmall(b *testing.B) {
	benchmarkTablePutString(b, testDataSmall[:])
}

func BenchmarkTablePutString(b *testing.B) {
	benchmarkTablePutString(b, testData[:])
}

func BenchmarkTablePutStringLarge(b *testing.B) {
	benchmarkTablePutString(b, testDataLarge[:])
}

func BenchmarkTablePutStringFullRecount(b *testing.B) {
	benchmarkTablePutString(b, testData[:], WithFullRecount())
}

func BenchmarkTablePutStringFullRecountLarge(b *testing.B) {
	benchmarkTablePutString(b, testDataLarge[:], WithFullRecount())
}

func benchmarkTablePutString(b *testing.B, data []string, options ...func(*TableConfig)) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		tb := NewTable(options...)
		for _, v := range data {
			tb.PutString(v)
		}
	}
}

func BenchmarkTablePutStringSeeded(b *testing.B) {
	benchmarkTablePutString(b, testData[:], WithHashFunc(SeededHash()))
}

func BenchmarkSyncTablePutString(b *testing.B) {
	b.ReportAllocs()
	s := NewSyncTable()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			s.PutString(testData[i])
			i++
			if i >= len(testData) {
				i = 0
			}
		}
	})
}
