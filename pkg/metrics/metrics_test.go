package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			m := NewManager()

			Convey("Then it uses its own registry", func() {
				So(m, ShouldNotBeNil)
				So(m.Registry(), ShouldNotBeNil)
				So(m.namespace, ShouldEqual, "payerlens")
				So(m.subsystem, ShouldEqual, "engine")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			m := NewManager(
				WithNamespace("lens"),
				WithSubsystem("batch"),
				WithLatencyBuckets([]float64{1, 10}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithRegistry(registry),
			)

			Convey("Then the options are applied", func() {
				So(m.Registry(), ShouldEqual, registry)
				So(m.namespace, ShouldEqual, "lens")
				So(m.latencyBuckets, ShouldResemble, []float64{1, 10})
			})
		})

		Convey("When empty options are given", func() {
			m := NewManager(WithNamespace(""), WithSubsystem(""), WithLatencyBuckets(nil), WithRegistry(nil))

			Convey("Then defaults are kept", func() {
				So(m.namespace, ShouldEqual, "payerlens")
				So(m.subsystem, ShouldEqual, "engine")
				So(m.Registry(), ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a fresh global manager", t, func() {
		m := Init()

		Convey("When recording engine activity", func() {
			RecordScoring(KindPhysician)
			RecordScoring(KindPhysician)
			RecordScoring(KindFMV)
			RecordPlaybook(89)
			RecordInvalidInput("playbook")
			RecordReferenceFallback("fmv")
			RecordOperationLatency("playbook", 0.4)
			AddBatchInFlight(3)
			AddBatchInFlight(-1)
			RecordBatchItem("score", "ok")
			RecordError("refdata", "reload")

			Convey("Then the values are visible on the registry", func() {
				So(testutil.ToFloat64(m.scorings.WithLabelValues(KindPhysician)), ShouldEqual, 2)
				So(testutil.ToFloat64(m.scorings.WithLabelValues(KindFMV)), ShouldEqual, 1)
				So(testutil.ToFloat64(m.playbooks), ShouldEqual, 1)
				So(testutil.ToFloat64(m.invalidInputs.WithLabelValues("playbook")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.referenceFallbacks.WithLabelValues("fmv")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.batchInFlight), ShouldEqual, 2)
				So(testutil.ToFloat64(m.batchItems.WithLabelValues("score", "ok")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.errorsByComponent.WithLabelValues("refdata", "reload")), ShouldEqual, 1)
				So(testutil.CollectAndCount(m.operationLatency), ShouldEqual, 1)
				So(GetRegistry(), ShouldEqual, m.Registry())
			})
		})

		Convey("When reference tables are swapped twice", func() {
			SetReferenceTables("builtin")
			SetReferenceTables("2026-10")

			Convey("Then only the latest version is reported", func() {
				So(testutil.CollectAndCount(m.tablesInfo), ShouldEqual, 1)
				So(testutil.ToFloat64(m.tablesInfo.WithLabelValues("2026-10")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.tablesReloads), ShouldEqual, 2)
			})
		})
	})
}

func TestWriteTextfile(t *testing.T) {
	Convey("Given recorded metrics", t, func() {
		Init(WithNamespace("lens"))
		RecordScoring(KindPractice)
		dir := t.TempDir()

		Convey("When exporting to a textfile", func() {
			path := filepath.Join(dir, "payerlens.prom")
			err := WriteTextfile(path)

			Convey("Then the file holds the exposition text", func() {
				So(err, ShouldBeNil)
				data, readErr := os.ReadFile(path)
				So(readErr, ShouldBeNil)
				So(string(data), ShouldContainSubstring, `lens_engine_scorings_total{kind="practice"} 1`)
			})
		})

		Convey("When the directory does not exist", func() {
			err := WriteTextfile(filepath.Join(dir, "missing", "payerlens.prom"))

			Convey("Then an export error is returned", func() {
				So(errors.Is(err, ErrExportFailed), ShouldBeTrue)
			})
		})
	})
}
