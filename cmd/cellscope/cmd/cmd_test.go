// SPDX-License-Identifier: MIT
package cmd_test

import (
	"bytes"
	"fmt"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/katalvlaran/cellscope/cmd/cellscope/cmd"
	"github.com/katalvlaran/cellscope/dataio"
	"github.com/katalvlaran/cellscope/transform"
	"github.com/katalvlaran/cellscope/visualize"
)

const nCells = 60

// writeFixtures writes a matrix with two well separated groups, a "counts"
// layer equal to it and an obs table with a string and an int column.
func writeFixtures(dir string) (matrix, counts, obs string) {
	rng := rand.New(rand.NewSource(11))
	var m, o strings.Builder
	m.WriteString("cell,gene1,gene2,gene3\n")
	o.WriteString("cell,type,batch\n")
	for i := 0; i < nCells; i++ {
		center := 10.0
		typ := "t1"
		if i%2 == 1 {
			center, typ = 100.0, "t2"
		}
		fmt.Fprintf(&m, "c%d,%g,%g,%g\n", i, center+rng.NormFloat64(), center+rng.NormFloat64(), rng.Float64())
		fmt.Fprintf(&o, "c%d,%s,%d\n", i, typ, i%3)
	}
	matrix = filepath.Join(dir, "x.csv")
	counts = filepath.Join(dir, "counts.csv")
	obs = filepath.Join(dir, "obs.csv")
	Expect(os.WriteFile(matrix, []byte(m.String()), 0o600)).To(Succeed())
	Expect(os.WriteFile(counts, []byte(m.String()), 0o600)).To(Succeed())
	Expect(os.WriteFile(obs, []byte(o.String()), 0o600)).To(Succeed())
	return matrix, counts, obs
}

func run(args ...string) (string, string, error) {
	var out, errOut bytes.Buffer
	root := cmd.NewRootCommand(&out, &errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

var _ = Describe("cellscope", func() {
	var dir, matrix, counts, obs string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		matrix, counts, obs = writeFixtures(dir)
	})

	Describe("kmeans", func() {
		It("labels every observation and writes provenance", func() {
			out := filepath.Join(dir, "obs_out.csv")
			uns := filepath.Join(dir, "uns.yaml")
			_, _, err := run("kmeans", "--matrix", matrix, "--obs", obs,
				"--load-layer", "counts="+counts, "--layer", "counts",
				"--features", "gene1,gene2", "--k", "4", "--seed", "42",
				"--out", out, "--uns-out", uns)
			Expect(err).NotTo(HaveOccurred())

			ad, err := dataio.LoadAnnData(strings.NewReader(mustRead(matrix)))
			Expect(err).NotTo(HaveOccurred())
			Expect(dataio.ReadObs(strings.NewReader(mustRead(out)), ad)).To(Succeed())
			col, err := ad.ObsColumn("kmeans")
			Expect(err).NotTo(HaveOccurred())
			labels, err := col.Ints()
			Expect(err).NotTo(HaveOccurred())
			Expect(labels).To(HaveLen(nCells))
			Expect(col.Categories()).To(HaveLen(2))
			Expect(ad.Obs().Columns()).To(Equal([]string{"type", "batch", "kmeans"}))

			Expect(mustRead(uns)).To(ContainSubstring("kmeans_features:\n  - gene1\n  - gene2\n"))
			Expect(mustRead(uns)).To(ContainSubstring("seed: 42"))
		})

		It("is reproducible with a fixed seed", func() {
			a, _, err := run("kmeans", "--matrix", matrix, "--k", "4", "--seed", "7", "--output", "cl")
			Expect(err).NotTo(HaveOccurred())
			b, _, err := run("kmeans", "--matrix", matrix, "--k", "4", "--seed", "7", "--output", "cl")
			Expect(err).NotTo(HaveOccurred())
			Expect(a).To(Equal(b))
			Expect(a).To(HavePrefix("index,cl\n"))
		})

		It("rejects a non-numeric k before clustering", func() {
			_, _, err := run("kmeans", "--matrix", matrix, "--k", "invalid")
			Expect(err).To(MatchError(transform.ErrInvalidParameter))
		})

		It("reads k from the environment", func() {
			GinkgoT().Setenv("CELLSCOPE_KMEANS_K", "0")
			_, _, err := run("kmeans", "--matrix", matrix)
			Expect(err).To(MatchError(ContainSubstring("kmeans.k")))
		})

		It("writes metrics when asked", func() {
			prom := filepath.Join(dir, "metrics.prom")
			_, _, err := run("kmeans", "--matrix", matrix, "--seed", "1", "--metrics-file", prom)
			Expect(err).NotTo(HaveOccurred())
			Expect(mustRead(prom)).To(ContainSubstring(`cellscope_kmeans_runs_total{annotation="kmeans",success="true"} 1`))
		})
	})

	Describe("histogram", func() {
		It("fans out one axes per group", func() {
			img := filepath.Join(dir, "split.png")
			stdout, _, err := run("histogram", "--matrix", matrix, "--obs", obs,
				"--feature", "gene1", "--group-by", "type", "--together=false", "--png", img)
			Expect(err).NotTo(HaveOccurred())
			Expect(stdout).To(Equal(img + ": 2 axes\n"))

			f, err := os.Open(img)
			Expect(err).NotTo(HaveOccurred())
			defer f.Close()
			_, err = png.Decode(f)
			Expect(err).NotTo(HaveOccurred())
		})

		It("draws a categorical observation", func() {
			img := filepath.Join(dir, "type.png")
			stdout, _, err := run("histogram", "--matrix", matrix, "--obs", obs, "--observation", "type", "--png", img)
			Expect(err).NotTo(HaveOccurred())
			Expect(stdout).To(Equal(img + ": 1 axes\n"))
		})

		It("reports conflicting selections verbatim", func() {
			_, _, err := run("histogram", "--matrix", matrix, "--obs", obs,
				"--feature", "gene1", "--observation", "type", "--png", filepath.Join(dir, "x.png"))
			Expect(err).To(MatchError(visualize.ErrConflictingSelection))
			Expect(err.Error()).To(Equal("Cannot pass both feature_name and observation_name, choose one"))
		})

		It("requires an output path", func() {
			_, _, err := run("histogram", "--matrix", matrix, "--feature", "gene1")
			Expect(err).To(HaveOccurred())
		})
	})
})

func mustRead(path string) string {
	b, err := os.ReadFile(path)
	Expect(err).NotTo(HaveOccurred())
	return string(b)
}
