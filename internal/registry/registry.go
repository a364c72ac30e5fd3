// Package registry builds the concrete metamodel tree for the current
// system. It is the single place where real sysfs paths are bound to nodes
// as adapters, and where subtrees are gated on discovered kernel facts; the
// tree engine itself knows nothing about paths or versions.
package registry

import (
	"path/filepath"

	"knobctl/internal/adapter"
	"knobctl/internal/meta"
)

// Facts are the externally discovered inputs the schema depends on.
type Facts struct {
	// Kernel is the parsed running-kernel release, used for gating.
	Kernel Version
	// Release sources the raw release string for the read-only
	// kernel.release leaf. When nil, the parsed version is echoed back.
	Release func() (string, error)
	// Root prefixes every bound path. "/" addresses the live system;
	// tests point it at a scratch directory.
	Root string
}

// Build constructs the knob tree for the given facts. Construction is
// deterministic and happens once per run.
func Build(f Facts) *meta.Model {
	if f.Root == "" {
		f.Root = "/"
	}
	mm := filepath.Join(f.Root, "sys", "kernel", "mm")

	strFile := func(parts ...string) adapter.Adapter {
		return adapter.File{Path: filepath.Join(parts...)}
	}
	intFile := func(parts ...string) adapter.Adapter {
		return adapter.Int{Inner: strFile(parts...)}
	}
	boolFile := func(parts ...string) adapter.Adapter {
		return adapter.Bool{Inner: strFile(parts...)}
	}
	selFile := func(parts ...string) adapter.Adapter {
		return adapter.OptionSelect{Inner: strFile(parts...)}
	}

	top := meta.NewRoot("top", "Linux memory-management tunables")

	kernel := top.AddGroup("kernel", "kernel identity").ObserveOnly()
	release := f.Release
	if release == nil {
		release = func() (string, error) { return f.Kernel.String(), nil }
	}
	kernel.AddReadOnlyScalar("release", "running kernel release", meta.TypeString,
		adapter.Func{ReadFn: func() (any, error) {
			s, err := release()
			if err != nil {
				return nil, err
			}
			return s, nil
		}})

	ksm := top.AddGroup("ksm", "kernel samepage merging")
	ksmDir := filepath.Join(mm, "ksm")
	ksm.AddScalar("max_page_sharing", "max sharing per stable node", meta.TypeInt, intFile(ksmDir, "max_page_sharing"))
	ksm.AddScalar("merge_across_nodes", "merge pages across NUMA nodes", meta.TypeInt, intFile(ksmDir, "merge_across_nodes"))
	ksm.AddScalar("pages_to_scan", "pages scanned per wake", meta.TypeInt, intFile(ksmDir, "pages_to_scan"))
	ksm.AddScalar("run", "daemon run state", meta.TypeInt, intFile(ksmDir, "run"))
	ksm.AddScalar("sleep_millisecs", "sleep between scans", meta.TypeInt, intFile(ksmDir, "sleep_millisecs"))
	ksm.AddScalar("stable_node_chains_prune_millisecs", "stale chain prune interval", meta.TypeInt, intFile(ksmDir, "stable_node_chains_prune_millisecs"))
	ksm.AddScalar("use_zero_pages", "share empty pages with the zero page", meta.TypeInt, intFile(ksmDir, "use_zero_pages"))

	// Multi-gen LRU landed in 6.1; older kernels have no lru_gen directory.
	if f.Kernel.AtLeast(6, 1) {
		lru := top.AddGroup("lru_gen", "multi-gen LRU")
		lruDir := filepath.Join(mm, "lru_gen")
		lru.AddScalar("enabled", "feature bitmap", meta.TypeString, strFile(lruDir, "enabled"))
		lru.AddScalar("min_ttl_ms", "working set protection window", meta.TypeInt, intFile(lruDir, "min_ttl_ms"))
	}

	numa := top.AddGroup("numa", "non-uniform memory access")
	numa.AddScalar("demotion_enabled", "demote cold pages to slow memory", meta.TypeBool, boolFile(mm, "numa", "demotion_enabled"))

	swap := top.AddGroup("swap", "swap readahead")
	swap.AddScalar("vma_ra_enabled", "VMA-based readahead", meta.TypeBool, boolFile(mm, "swap", "vma_ra_enabled"))

	thp := top.AddGroup("transparent_hugepage", "transparent hugepages")
	thpDir := filepath.Join(mm, "transparent_hugepage")
	thp.AddScalar("defrag", "defrag policy", meta.TypeString, selFile(thpDir, "defrag"))
	thp.AddScalar("enabled", "allocation policy", meta.TypeString, selFile(thpDir, "enabled"))
	thp.AddReadOnlyScalar("hpage_pmd_size", "PMD-mapped hugepage size", meta.TypeInt, intFile(thpDir, "hpage_pmd_size"))

	khpd := thp.AddGroup("khugepaged", "huge pages daemon")
	khpdDir := filepath.Join(thpDir, "khugepaged")
	khpd.AddScalar("alloc_sleep_millisecs", "retry sleep after failed allocation", meta.TypeInt, intFile(khpdDir, "alloc_sleep_millisecs"))
	khpd.AddScalar("max_ptes_none", "empty PTEs tolerated per collapse", meta.TypeInt, intFile(khpdDir, "max_ptes_none"))
	khpd.AddScalar("max_ptes_shared", "shared PTEs tolerated per collapse", meta.TypeInt, intFile(khpdDir, "max_ptes_shared"))
	khpd.AddScalar("max_ptes_swap", "swapped PTEs tolerated per collapse", meta.TypeInt, intFile(khpdDir, "max_ptes_swap"))
	khpd.AddScalar("pages_to_scan", "pages scanned per wake", meta.TypeInt, intFile(khpdDir, "pages_to_scan"))
	khpd.AddScalar("scan_sleep_millisecs", "sleep between scans", meta.TypeInt, intFile(khpdDir, "scan_sleep_millisecs"))

	thp.AddScalar("shmem_enabled", "shmem/tmpfs hugepage policy", meta.TypeString, selFile(thpDir, "shmem_enabled"))
	thp.AddScalar("use_zero_page", "use the huge zero page", meta.TypeInt, intFile(thpDir, "use_zero_page"))

	return meta.NewModel(top)
}
