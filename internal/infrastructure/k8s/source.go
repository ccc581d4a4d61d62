package k8s

import (
	"context"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	metricsclient "k8s.io/metrics/pkg/client/clientset/versioned"

	"github.com/HaPhanBaoMinh/segbar/internal/domain"
)

// Source reports the CPU or memory utilization of one node, or of the whole
// cluster when Node is empty, as a fraction of allocatable capacity.
type Source struct {
	core    kubernetes.Interface
	metrics metricsclient.Interface

	Node     string
	Resource corev1.ResourceName
	Interval time.Duration
}

func New(kubeconfigPath, contextName string) (*Source, error) {
	cfg, err := loadRESTConfig(kubeconfigPath, contextName)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to load kubeconfig")
	}
	cfg.QPS = 30
	cfg.Burst = 60

	core, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to create kubernetes client")
	}
	m, err := metricsclient.NewForConfig(cfg)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to create metrics client")
	}
	return NewForClients(core, m), nil
}

func NewForClients(core kubernetes.Interface, m metricsclient.Interface) *Source {
	return &Source{
		core:     core,
		metrics:  m,
		Resource: corev1.ResourceCPU,
		Interval: 2 * time.Second,
	}
}

func loadRESTConfig(kubeconfigPath, contextName string) (*rest.Config, error) {
	if cfg, err := rest.InClusterConfig(); err == nil {
		return cfg, nil
	}
	loadingRules := &clientcmd.ClientConfigLoadingRules{ExplicitPath: kubeconfigPath}
	overrides := &clientcmd.ConfigOverrides{}
	if contextName != "" {
		overrides.CurrentContext = contextName
	}
	return clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, overrides).ClientConfig()
}

// Utilization returns used/allocatable for the configured node and resource.
func (s *Source) Utilization(ctx context.Context) (float64, error) {
	nms, err := s.metrics.MetricsV1beta1().NodeMetricses().List(ctx, metav1.ListOptions{})
	if err != nil {
		return 0, pkgerrors.Wrap(err, "failed to list node metrics")
	}
	usage := map[string]corev1.ResourceList{}
	for _, m := range nms.Items {
		usage[m.Name] = m.Usage
	}

	nodes, err := s.core.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return 0, pkgerrors.Wrap(err, "failed to list nodes")
	}

	var used, alloc int64
	matched := 0
	for _, n := range nodes.Items {
		if s.Node != "" && n.Name != s.Node {
			continue
		}
		matched++
		if q, ok := n.Status.Allocatable[s.Resource]; ok {
			alloc += quantity(s.Resource, q)
		}
		if q, ok := usage[n.Name][s.Resource]; ok {
			used += quantity(s.Resource, q)
		}
	}

	if matched == 0 {
		if s.Node != "" {
			return 0, pkgerrors.Errorf("node %q not found", s.Node)
		}
		return 0, pkgerrors.New("cluster has no nodes")
	}
	if alloc <= 0 {
		return 0, pkgerrors.Errorf("no allocatable %s", s.Resource)
	}
	return float64(used) / float64(alloc), nil
}

// CPU is compared in millicores, everything else in base units.
func quantity(name corev1.ResourceName, q resource.Quantity) int64 {
	if name == corev1.ResourceCPU {
		return q.MilliValue()
	}
	return q.Value()
}

func (s *Source) Stream(ctx context.Context) (<-chan domain.Message, error) {
	first, err := s.Utilization(ctx)
	if err != nil {
		return nil, err
	}
	interval := s.Interval
	if interval <= 0 {
		interval = 2 * time.Second
	}

	ch := make(chan domain.Message, 4)
	go func() {
		defer close(ch)
		ch <- domain.SetValue{Value: first}

		tick := time.NewTicker(interval)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-tick.C:
			}

			v, err := s.Utilization(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logrus.WithError(err).WithField("node", s.Node).Warn("failed to read utilization")
				continue
			}
			select {
			case ch <- domain.SetValue{Value: v}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}
