package custom_flags_test

import (
	"errors"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"

	"github.com/louiss0/vulkan-sdk-setup/custom_errors"
	"github.com/louiss0/vulkan-sdk-setup/custom_flags"
)

func TestCustomFlags(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Custom Flags Suite")
}

var _ = Describe("FilePathFlag", func() {
	var (
		flag    custom_flags.FilePathFlag
		assertT *assert.Assertions
	)

	BeforeEach(func() {
		assertT = assert.New(GinkgoT())
		flag = custom_flags.NewFilePathFlag("dest")
	})

	It("should report its name and type", func() {
		assertT.Equal("dest", flag.FlagName())
		assertT.Equal("string", flag.Type())
		assertT.Equal("", flag.String())
	})

	It("should accept the default installer destination", func() {
		assertT.NoError(flag.Set("Azteck/vendor/VulkanSDK/VulkanSDK.exe"))
		assertT.Equal("Azteck/vendor/VulkanSDK/VulkanSDK.exe", flag.String())
	})

	It("should accept a relative path with dots", func() {
		assertT.NoError(flag.Set("../vendor/VulkanSDK.exe"))
	})

	It("should reject an empty value", func() {
		err := flag.Set("   ")
		assertT.Error(err)
		assertT.True(errors.Is(err, custom_errors.ErrInvalidFlag))
		assertT.Contains(err.Error(), "cannot be empty")
	})

	DescribeTable("should accept paths found in real checkouts",
		func(path string) {
			Expect(flag.Set(path)).To(Succeed())
			Expect(flag.String()).To(Equal(path))
		},
		Entry("a space in a directory", "/home/dev/My Projects/azteck/.vksetup.yaml"),
		Entry("a plus sign", "/home/dev/azteck+engine/.vksetup.yaml"),
		Entry("a non-ASCII letter", "/home/dév/azteck/.vksetup.yaml"),
		Entry("a spaced relative path", "third party/Vulkan SDK.exe"),
	)

	DescribeTable("should reject values that do not name a file",
		func(path string) {
			err := flag.Set(path)
			Expect(errors.Is(err, custom_errors.ErrInvalidFlag)).To(BeTrue())
			Expect(err).To(MatchError(ContainSubstring("does not name a file")))
			Expect(flag.String()).To(BeEmpty())
		},
		Entry("a trailing separator", "vendor/VulkanSDK/"),
		Entry("the current directory", "."),
		Entry("the parent directory", "vendor/.."),
		Entry("the root", "/"),
		Entry("a NUL byte", "vendor/Vulkan\x00SDK.exe"),
	)
})

var _ = Describe("VersionFlag", func() {
	var flag custom_flags.VersionFlag

	BeforeEach(func() {
		flag = custom_flags.NewVersionFlag("sdk-version")
	})

	DescribeTable("accepted versions",
		func(input, expected string) {
			Expect(flag.Set(input)).To(Succeed())
			Expect(flag.String()).To(Equal(expected))
		},
		Entry("the pinned version", "1.3.261.1", "1.3.261.1"),
		Entry("a newer version", "1.3.275.0", "1.3.275.0"),
		Entry("surrounding whitespace", " 1.3.261.1 ", "1.3.261.1"),
	)

	DescribeTable("rejected versions",
		func(input string) {
			err := flag.Set(input)
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, custom_errors.ErrInvalidFlag)).To(BeTrue())
			Expect(flag.String()).To(BeEmpty())
		},
		Entry("three parts", "1.3.261"),
		Entry("a v prefix", "v1.3.261.1"),
		Entry("letters", "1.3.x.1"),
		Entry("empty", ""),
	)

	It("should name its type", func() {
		Expect(flag.Type()).To(Equal("version"))
		Expect(flag.FlagName()).To(Equal("sdk-version"))
	})
})

var _ = Describe("URLFlag", func() {
	var flag custom_flags.URLFlag

	BeforeEach(func() {
		flag = custom_flags.NewURLFlag("installer-url")
	})

	It("should keep a version placeholder intact", func() {
		template := "https://sdk.lunarg.com/sdk/download/{version}/windows/vulkan_sdk.exe"
		Expect(flag.Set(template)).To(Succeed())
		Expect(flag.String()).To(Equal(template))
	})

	It("should reject relative and non-http URLs", func() {
		Expect(flag.Set("/sdk/vulkan_sdk.exe")).NotTo(Succeed())
		Expect(flag.Set("ftp://example.com/vulkan_sdk.exe")).NotTo(Succeed())
	})

	It("should hand out a copy of its schemes", func() {
		schemes := flag.AllowedSchemes()
		schemes[0] = "gopher"
		Expect(flag.AllowedSchemes()).To(Equal([]string{"http", "https"}))
	})
})
